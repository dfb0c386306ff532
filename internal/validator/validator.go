// Package validator performs concurrent link validation over the
// master table.
package validator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"toolbrowser/internal/config"
	"toolbrowser/internal/models"
	"toolbrowser/pkg/utils"
)

// Contract errors. Per-URL network outcomes are never surfaced as
// errors; they become ValidationResult variants.
var (
	ErrEmptyTable         = errors.New("master table has no records")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrInvalidTimeout     = errors.New("timeout must be positive")
	ErrTooManyRedirects   = errors.New("too many redirects")
)

// ProgressFunc is invoked after each completed URL check. It may run on
// any goroutine; thread-safe UI marshaling is the consumer's job.
type ProgressFunc func(completed, total int)

// Validator checks every URL-bearing record of a master table with
// bounded concurrency and a per-request timeout.
type Validator struct {
	client    *http.Client
	timeout   time.Duration
	workers   int
	userAgent string
	progress  ProgressFunc
}

// NewValidator creates a validator from the validation configuration.
func NewValidator(cfg config.ValidationConfig) (*Validator, error) {
	if cfg.MaxWorkers < 1 {
		return nil, ErrInvalidConcurrency
	}

	if cfg.TimeoutSeconds < 1 {
		return nil, ErrInvalidTimeout
	}

	return &Validator{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return ErrTooManyRedirects
				}

				return nil
			},
		},
		timeout:   cfg.Timeout(),
		workers:   cfg.MaxWorkers,
		userAgent: cfg.UserAgent,
	}, nil
}

// SetProgress registers a progress callback for subsequent passes.
func (v *Validator) SetProgress(fn ProgressFunc) {
	v.progress = fn
}

type job struct {
	idx int
	url string
}

type indexedResult struct {
	idx int
	res models.ValidationResult
}

// ValidateTable runs one validation pass and returns the updated table
// plus a flat report, one entry per checked URL in table order. The
// input table is not mutated; workers write results into a per-run
// collection that is folded in only after the pool drains.
//
// Cancelling ctx stops dispatching new checks; in-flight checks finish
// or time out naturally and their results are kept. Records whose check
// was never dispatched stay pending.
func (v *Validator) ValidateTable(ctx context.Context, table models.MasterTable) (models.MasterTable, []models.ValidationResult, error) {
	if len(table) == 0 {
		return nil, nil, ErrEmptyTable
	}

	out := make(models.MasterTable, len(table))
	copy(out, table)

	var jobs []job

	for i := range out {
		if strings.TrimSpace(out[i].URL) == "" {
			continue
		}

		// Reset for this pass so a cancelled run leaves exactly the
		// completed checks terminal.
		out[i].ValidationStatus = models.StatusPending
		out[i].HTTPStatus = 0
		out[i].ValidationMessage = ""
		out[i].LastValidated = time.Time{}

		jobs = append(jobs, job{idx: i, url: out[i].URL})
	}

	passStamp := time.Now()

	for i := range out {
		if strings.TrimSpace(out[i].URL) == "" {
			out[i].ValidationStatus = models.StatusEmpty
			out[i].LastValidated = passStamp
		}
	}

	if len(jobs) == 0 {
		return out, nil, nil
	}

	total := len(jobs)

	workers := v.workers
	if workers > total {
		workers = total
	}

	jobsCh := make(chan job)
	resultsCh := make(chan indexedResult, total)

	go func() {
		defer close(jobsCh)

		for _, j := range jobs {
			if ctx.Err() != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case jobsCh <- j:
			}
		}
	}()

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobsCh {
				resultsCh <- indexedResult{idx: j.idx, res: v.checkURL(j.url)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Single collector drains the pool; only this goroutine touches the
	// result collection.
	completed := 0
	byIndex := make(map[int]models.ValidationResult, total)

	for r := range resultsCh {
		byIndex[r.idx] = r.res
		completed++

		if v.progress != nil {
			v.progress(completed, total)
		}
	}

	var report []models.ValidationResult

	for _, j := range jobs {
		res, ok := byIndex[j.idx]
		if !ok {
			continue
		}

		out[j.idx].URL = res.URL
		out[j.idx].ValidationStatus = res.Status
		out[j.idx].HTTPStatus = res.HTTPStatus
		out[j.idx].ValidationMessage = res.Message
		out[j.idx].LastValidated = res.CheckedAt

		report = append(report, res)
	}

	return out, report, nil
}

// checkURL assigns a terminal status to one URL. All network variance
// is captured in the result, never returned as an error.
func (v *Validator) checkURL(raw string) models.ValidationResult {
	res := models.ValidationResult{
		URL:       strings.TrimSpace(raw),
		CheckedAt: time.Now(),
	}

	candidate := utils.EnsureScheme(res.URL)

	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Host == "" {
		res.Status = models.StatusInvalid
		res.Message = "invalid URL format"

		return res
	}

	res.URL = candidate

	// A per-request timeout, deliberately independent of the pass
	// context: cancellation lets in-flight checks run to completion.
	reqCtx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	statusCode, err := v.fetch(reqCtx, candidate)
	if err != nil {
		res.Status, res.Message = classifyError(err)

		return res
	}

	res.HTTPStatus = statusCode

	if statusCode < 400 {
		res.Status = models.StatusValid
	} else {
		res.Status = models.StatusError
		res.Message = fmt.Sprintf("HTTP %d", statusCode)
	}

	return res
}

// fetch issues a HEAD request, falling back to GET when the server
// rejects HEAD with 405.
func (v *Validator) fetch(ctx context.Context, target string) (int, error) {
	statusCode, err := v.do(ctx, http.MethodHead, target)
	if err != nil {
		return 0, err
	}

	if statusCode == http.StatusMethodNotAllowed {
		return v.do(ctx, http.MethodGet, target)
	}

	return statusCode, nil
}

func (v *Validator) do(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}

	if v.userAgent != "" {
		req.Header.Set("User-Agent", v.userAgent)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// classifyError separates timeouts from network-level failures.
func classifyError(err error) (models.ValidationStatus, string) {
	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return models.StatusTimeout, "request timed out"
	}

	return models.StatusConnectionError, utils.Truncate(err.Error(), 120)
}
