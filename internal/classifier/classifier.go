// Package classifier derives access levels and categories for tool
// records from ordered keyword heuristics.
package classifier

import (
	"net/url"
	"strings"

	"toolbrowser/internal/config"
	"toolbrowser/internal/models"
	"toolbrowser/pkg/utils"
)

// DefaultCategory is assigned when no category rule matches.
const DefaultCategory = "General Utilities"

// Built-in keyword sets, used when the configuration leaves them empty.
var (
	defaultInternalKeywords = []string{"internal", "intranet", "corp"}
	defaultAudienceKeywords = []string{"employee", "staff", "private", "restricted", "confidential"}

	defaultCategories = []config.CategoryRule{
		{Name: "Security", Keywords: []string{"authentication", "token", "security", "sso"}},
		{Name: "Education", Keywords: []string{"learning", "labs", "training"}},
		{Name: "Diagramming", Keywords: []string{"diagram", "flowchart"}},
		{Name: "Media Tools", Keywords: []string{"stream", "video", "recording"}},
		{Name: "Code Repositories", Keywords: []string{"git", "repository"}},
		{Name: "Meetings", Keywords: []string{"meeting", "conference"}},
		{Name: "Automation", Keywords: []string{"automation", "ansible"}},
		{Name: "CLI Utilities", Keywords: []string{"terminal", "cli"}},
	}
)

// rule is one pure access predicate. Rules run in fixed priority order;
// the first one that fires decides the level.
type rule func(rec *models.ToolRecord) (models.AccessLevel, bool)

// Classifier applies access and category heuristics.
type Classifier struct {
	internalKeywords []string
	audienceKeywords []string
	categories       []config.CategoryRule
	rules            []rule
}

// New creates a classifier from the configured keyword sets. Configured
// internal domains always extend the internal keyword set.
func New(cfg config.ClassifierConfig) *Classifier {
	internal := cfg.InternalKeywords
	if len(internal) == 0 {
		internal = defaultInternalKeywords
	}

	internal = append(append([]string{}, internal...), cfg.InternalDomains...)

	audience := cfg.AudienceKeywords
	if len(audience) == 0 {
		audience = defaultAudienceKeywords
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = defaultCategories
	}

	c := &Classifier{
		internalKeywords: lowerAll(internal),
		audienceKeywords: lowerAll(audience),
		categories:       categories,
	}

	c.rules = []rule{
		c.hintRule,
		c.urlKeywordRule,
		c.audienceRule,
		c.publicURLRule,
	}

	return c
}

// Access returns the access level for a record, evaluating the rule
// list in priority order.
func (c *Classifier) Access(rec *models.ToolRecord) models.AccessLevel {
	for _, r := range c.rules {
		if level, ok := r(rec); ok {
			return level
		}
	}

	return models.AccessUnknown
}

// Category infers a category from name, description, and URL when the
// source supplied none. First matching rule wins.
func (c *Classifier) Category(rec *models.ToolRecord) string {
	haystack := strings.ToLower(rec.Name + " " + rec.Description + " " + rec.URL)

	for _, catRule := range c.categories {
		for _, kw := range catRule.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return catRule.Name
			}
		}
	}

	return DefaultCategory
}

// Apply stamps access level on every record and fills missing
// categories by inference.
func (c *Classifier) Apply(table models.MasterTable) {
	for i := range table {
		table[i].Access = c.Access(&table[i])

		if table[i].Category == "" {
			table[i].Category = c.Category(&table[i])
		}
	}
}

// hintRule honors an unambiguous access hint column from the source.
func (c *Classifier) hintRule(rec *models.ToolRecord) (models.AccessLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(rec.AccessHint)) {
	case "internal":
		return models.AccessInternal, true
	case "public":
		return models.AccessPublic, true
	default:
		return "", false
	}
}

// urlKeywordRule flags URLs whose host or path carries an internal
// marker or a configured internal domain.
func (c *Classifier) urlKeywordRule(rec *models.ToolRecord) (models.AccessLevel, bool) {
	if rec.URL == "" {
		return "", false
	}

	target := strings.ToLower(rec.URL)

	if u, err := url.Parse(utils.EnsureScheme(rec.URL)); err == nil && u.Host != "" {
		target = strings.ToLower(u.Host + u.Path)
	}

	for _, kw := range c.internalKeywords {
		if strings.Contains(target, kw) {
			return models.AccessInternal, true
		}
	}

	return "", false
}

// audienceRule flags internal-audience wording in description or notes.
func (c *Classifier) audienceRule(rec *models.ToolRecord) (models.AccessLevel, bool) {
	text := strings.ToLower(rec.Description + " " + rec.Notes)

	for _, kw := range c.audienceKeywords {
		if strings.Contains(text, kw) {
			return models.AccessInternal, true
		}
	}

	return "", false
}

// publicURLRule treats a syntactically valid absolute URL with a
// public-looking host as Public.
func (c *Classifier) publicURLRule(rec *models.ToolRecord) (models.AccessLevel, bool) {
	if rec.URL == "" {
		return "", false
	}

	candidate := utils.EnsureScheme(rec.URL)

	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	if strings.Contains(u.Host, ".") {
		return models.AccessPublic, true
	}

	return "", false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}
