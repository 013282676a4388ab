package listing

import (
	"testing"
	"time"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want string
	}{
		{"hyphens become spaces", "wash-the-sins", "wash the sins"},
		{"markup is stripped", "recette-<script>alert(1)</script>du-jour", "recette alert(1)du jour"},
		{"single word untouched", "editorial", "editorial"},
		{"leading and trailing space trimmed", "-entre-deux-", "entre deux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.slug); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 11, 5, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(d); got != "05/11/2024" {
		t.Errorf("FormatDate = %q, want 05/11/2024", got)
	}
}

func TestActions(t *testing.T) {
	editor := Actions(ContextEditor, "article")
	if len(editor) != 4 {
		t.Errorf("Expected 4 editor article actions, got %v", editor)
	}

	public := Actions(ContextPublic, "article")
	if len(public) != 1 || public[0] != "read" {
		t.Errorf("Public rows expose read only, got %v", public)
	}

	if Actions(ContextPublic, "unknown") != nil {
		t.Error("Unknown targets get no actions")
	}

	// callers must not be able to mutate the table
	editor[0] = "tampered"
	if fresh := Actions(ContextEditor, "article"); fresh[0] != "update" {
		t.Errorf("Action table was mutated through a returned slice: %v", fresh)
	}
}
