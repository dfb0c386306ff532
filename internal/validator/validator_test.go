package validator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toolbrowser/internal/config"
	"toolbrowser/internal/models"
)

func newTestValidator(t *testing.T, timeoutSec, workers int) *Validator {
	t.Helper()

	v, err := NewValidator(config.ValidationConfig{
		TimeoutSeconds: timeoutSec,
		MaxWorkers:     workers,
		UserAgent:      "toolbrowser-test/1.0",
	})
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	return v
}

func tableOf(urls ...string) models.MasterTable {
	table := make(models.MasterTable, 0, len(urls))

	for _, u := range urls {
		table = append(table, models.ToolRecord{Name: "tool", URL: u})
	}

	return table
}

func TestNewValidator_ContractErrors(t *testing.T) {
	if _, err := NewValidator(config.ValidationConfig{TimeoutSeconds: 10, MaxWorkers: 0}); !errors.Is(err, ErrInvalidConcurrency) {
		t.Errorf("expected ErrInvalidConcurrency, got %v", err)
	}

	if _, err := NewValidator(config.ValidationConfig{TimeoutSeconds: 0, MaxWorkers: 5}); !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("expected ErrInvalidTimeout, got %v", err)
	}
}

func TestValidateTable_EmptyTable(t *testing.T) {
	v := newTestValidator(t, 10, 5)

	if _, _, err := v.ValidateTable(context.Background(), nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestValidateTable_StatusOutcomes(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okSrv.Close()

	notFoundSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFoundSrv.Close()

	// HEAD rejected, GET accepted.
	headlessSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer headlessSrv.Close()

	// A closed server yields a refused connection.
	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadSrv.URL
	deadSrv.Close()

	v := newTestValidator(t, 5, 4)

	table := tableOf(okSrv.URL, notFoundSrv.URL, headlessSrv.URL, deadURL, "not a url")
	table = append(table, models.ToolRecord{Name: "no link", ValidationStatus: models.StatusEmpty})

	updated, report, err := v.ValidateTable(context.Background(), table)
	if err != nil {
		t.Fatalf("ValidateTable failed: %v", err)
	}

	wantStatuses := []models.ValidationStatus{
		models.StatusValid,
		models.StatusError,
		models.StatusValid,
		models.StatusConnectionError,
		models.StatusInvalid,
		models.StatusEmpty,
	}

	for i, want := range wantStatuses {
		if updated[i].ValidationStatus != want {
			t.Errorf("record %d: expected status %q, got %q (%s)",
				i, want, updated[i].ValidationStatus, updated[i].ValidationMessage)
		}

		if updated[i].LastValidated.IsZero() {
			t.Errorf("record %d: expected LastValidated set", i)
		}
	}

	if updated[0].HTTPStatus != 200 {
		t.Errorf("expected HTTP 200, got %d", updated[0].HTTPStatus)
	}

	if updated[1].HTTPStatus != 404 || updated[1].ValidationMessage != "HTTP 404" {
		t.Errorf("expected HTTP 404 with message, got %d %q",
			updated[1].HTTPStatus, updated[1].ValidationMessage)
	}

	// No status code applies to connection-level or syntactic failures.
	if updated[3].HTTPStatus != 0 || updated[3].ValidationMessage == "" {
		t.Errorf("connection_error should carry a message and no code, got %d %q",
			updated[3].HTTPStatus, updated[3].ValidationMessage)
	}

	if updated[4].HTTPStatus != 0 || updated[4].ValidationMessage == "" {
		t.Errorf("invalid should carry a message and no code, got %d %q",
			updated[4].HTTPStatus, updated[4].ValidationMessage)
	}

	// One report row per checked URL; the empty-url record is not in it.
	if len(report) != 5 {
		t.Fatalf("expected 5 report rows, got %d", len(report))
	}
}

func TestValidateTable_Timeout(t *testing.T) {
	slowSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slowSrv.Close()

	v := newTestValidator(t, 1, 1)

	updated, _, err := v.ValidateTable(context.Background(), tableOf(slowSrv.URL))
	if err != nil {
		t.Fatalf("ValidateTable failed: %v", err)
	}

	if updated[0].ValidationStatus != models.StatusTimeout {
		t.Errorf("expected timeout, got %q (%s)",
			updated[0].ValidationStatus, updated[0].ValidationMessage)
	}

	if updated[0].HTTPStatus != 0 {
		t.Errorf("timeout should carry no status code, got %d", updated[0].HTTPStatus)
	}
}

func TestValidateTable_ProgressAndOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(200 * time.Millisecond)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := newTestValidator(t, 5, 4)

	var calls [][2]int

	v.SetProgress(func(completed, total int) {
		calls = append(calls, [2]int{completed, total})
	})

	// Slow URL first: completion order differs from table order.
	table := tableOf(srv.URL+"/slow", srv.URL+"/a", srv.URL+"/b", srv.URL+"/c")

	updated, report, err := v.ValidateTable(context.Background(), table)
	if err != nil {
		t.Fatalf("ValidateTable failed: %v", err)
	}

	if len(calls) != 4 {
		t.Fatalf("expected 4 progress calls, got %d", len(calls))
	}

	if last := calls[len(calls)-1]; last != [2]int{4, 4} {
		t.Errorf("expected final progress (4,4), got %v", last)
	}

	// Output is reassembled in table order, not completion order.
	if report[0].URL != srv.URL+"/slow" {
		t.Errorf("expected slow URL first in report, got %q", report[0].URL)
	}

	for i := range updated {
		if updated[i].ValidationStatus != models.StatusValid {
			t.Errorf("record %d: expected valid, got %q", i, updated[i].ValidationStatus)
		}
	}
}

func TestValidateTable_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := newTestValidator(t, 5, 2)

	table := tableOf(srv.URL+"/ok", srv.URL+"/gone")

	first, _, err := v.ValidateTable(context.Background(), table)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	second, _, err := v.ValidateTable(context.Background(), first)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	for i := range first {
		if first[i].ValidationStatus != second[i].ValidationStatus {
			t.Errorf("record %d: statuses differ across passes: %q vs %q",
				i, first[i].ValidationStatus, second[i].ValidationStatus)
		}

		if first[i].HTTPStatus != second[i].HTTPStatus {
			t.Errorf("record %d: codes differ across passes: %d vs %d",
				i, first[i].HTTPStatus, second[i].HTTPStatus)
		}
	}
}

func TestValidateTable_Cancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := newTestValidator(t, 5, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	completions := 0

	v.SetProgress(func(completed, total int) {
		completions = completed

		// Stop after the first completed check; in-flight checks may
		// still finish, but nothing new is dispatched afterwards.
		cancel()
	})

	table := tableOf(
		srv.URL+"/1", srv.URL+"/2", srv.URL+"/3",
		srv.URL+"/4", srv.URL+"/5", srv.URL+"/6",
	)

	updated, report, err := v.ValidateTable(ctx, table)
	if err != nil {
		t.Fatalf("ValidateTable failed: %v", err)
	}

	if completions == 0 {
		t.Fatal("expected at least one completion before cancellation")
	}

	terminal := 0

	for _, rec := range updated {
		if rec.ValidationStatus != models.StatusPending {
			terminal++
		} else {
			// Undispatched records must stay fully unset.
			if rec.HTTPStatus != 0 || !rec.LastValidated.IsZero() {
				t.Error("pending record should have no validation data")
			}
		}
	}

	if terminal != completions {
		t.Errorf("expected %d terminal statuses, got %d", completions, terminal)
	}

	if len(report) != completions {
		t.Errorf("expected %d report rows, got %d", completions, len(report))
	}

	if terminal >= len(table) {
		t.Errorf("expected cancellation to leave pending records, all %d completed", terminal)
	}
}
