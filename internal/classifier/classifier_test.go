package classifier

import (
	"testing"

	"toolbrowser/internal/config"
	"toolbrowser/internal/models"
)

func TestClassifier_Access(t *testing.T) {
	c := New(config.ClassifierConfig{})

	tests := []struct {
		name string
		rec  models.ToolRecord
		want models.AccessLevel
	}{
		{
			"Explicit internal hint",
			models.ToolRecord{AccessHint: "Internal", URL: "https://github.com/org/tool"},
			models.AccessInternal,
		},
		{
			"Explicit public hint beats internal URL",
			models.ToolRecord{AccessHint: "public", URL: "https://intranet.example.com"},
			models.AccessPublic,
		},
		{
			"Ambiguous hint falls through",
			models.ToolRecord{AccessHint: "maybe", URL: "https://example.com"},
			models.AccessPublic,
		},
		{
			"Intranet host",
			models.ToolRecord{URL: "https://intranet.example.com/wiki"},
			models.AccessInternal,
		},
		{
			"Corp path",
			models.ToolRecord{URL: "https://tools.example.com/corp/dashboard"},
			models.AccessInternal,
		},
		{
			"Employee wording in description",
			models.ToolRecord{URL: "https://example.com", Description: "Portal for employee onboarding"},
			models.AccessInternal,
		},
		{
			"Restricted wording in notes",
			models.ToolRecord{URL: "https://example.com", Notes: "restricted to the platform team"},
			models.AccessInternal,
		},
		{
			"Public host",
			models.ToolRecord{URL: "https://github.com/org/repo"},
			models.AccessPublic,
		},
		{
			"Bare dotted host gets scheme",
			models.ToolRecord{URL: "example.com/tools"},
			models.AccessPublic,
		},
		{
			"No URL no keywords",
			models.ToolRecord{Name: "Something", Description: "A tool"},
			models.AccessUnknown,
		},
		{
			"Unparseable URL",
			models.ToolRecord{URL: "not a url"},
			models.AccessUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Access(&tt.rec); got != tt.want {
				t.Errorf("Access() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifier_ConfiguredInternalDomains(t *testing.T) {
	c := New(config.ClassifierConfig{
		InternalDomains: []string{"example-corp.io"},
	})

	rec := models.ToolRecord{URL: "https://wiki.example-corp.io/home"}

	if got := c.Access(&rec); got != models.AccessInternal {
		t.Errorf("expected configured domain to classify Internal, got %q", got)
	}
}

func TestClassifier_Category(t *testing.T) {
	c := New(config.ClassifierConfig{})

	tests := []struct {
		name string
		rec  models.ToolRecord
		want string
	}{
		{"Auth tool", models.ToolRecord{Description: "Token authentication service"}, "Security"},
		{"Training", models.ToolRecord{Description: "Interactive learning labs"}, "Education"},
		{"Diagrams", models.ToolRecord{Name: "Draw.io", Description: "diagram editor"}, "Diagramming"},
		{"Video", models.ToolRecord{Description: "Screen recording and streaming"}, "Media Tools"},
		{"Git host", models.ToolRecord{URL: "https://github.com/org"}, "Code Repositories"},
		{"Conference", models.ToolRecord{Description: "Video conference rooms"}, "Media Tools"},
		{"Meetings", models.ToolRecord{Description: "Team meeting scheduler"}, "Meetings"},
		{"Ansible", models.ToolRecord{Description: "ansible playbook runner"}, "Automation"},
		{"Terminal", models.ToolRecord{Description: "terminal session sharing"}, "CLI Utilities"},
		{"Nothing matches", models.ToolRecord{Name: "Foo", Description: "Bar"}, DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Category(&tt.rec); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifier_Apply(t *testing.T) {
	c := New(config.ClassifierConfig{})

	table := models.MasterTable{
		{Name: "GitHub", URL: "https://github.com/org"},
		{Name: "Wiki", URL: "https://intranet.example.com", Category: "Knowledge Base"},
	}

	c.Apply(table)

	if table[0].Access != models.AccessPublic {
		t.Errorf("expected Public, got %q", table[0].Access)
	}

	if table[0].Category != "Code Repositories" {
		t.Errorf("expected inferred category, got %q", table[0].Category)
	}

	if table[1].Access != models.AccessInternal {
		t.Errorf("expected Internal, got %q", table[1].Access)
	}

	// Source-provided categories are never overwritten.
	if table[1].Category != "Knowledge Base" {
		t.Errorf("expected source category kept, got %q", table[1].Category)
	}
}

func TestClassifier_CustomCategories(t *testing.T) {
	c := New(config.ClassifierConfig{
		Categories: []config.CategoryRule{
			{Name: "Observability", Keywords: []string{"dashboard", "metrics"}},
		},
	})

	rec := models.ToolRecord{Description: "Metrics dashboards"}

	if got := c.Category(&rec); got != "Observability" {
		t.Errorf("expected configured category, got %q", got)
	}

	other := models.ToolRecord{Description: "terminal tool"}

	// Configured rules replace the defaults entirely.
	if got := c.Category(&other); got != DefaultCategory {
		t.Errorf("expected %q, got %q", DefaultCategory, got)
	}
}
