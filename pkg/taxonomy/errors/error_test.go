package errors

import (
	"strings"
	"testing"
)

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "message only",
			diag: Diagnostic{Check: CheckFields, Severity: SeverityError, Message: "missing field 'version'"},
			want: "[fields] missing field 'version'",
		},
		{
			name: "with path",
			diag: Diagnostic{Check: CheckPredicates, Severity: SeverityError, Path: "predicates[1]", Message: "bad"},
			want: "[predicates] bad (at predicates[1])",
		},
		{
			name: "with suggestion",
			diag: Diagnostic{Check: CheckFields, Severity: SeverityError, Message: "unknown", Suggestion: "Did you mean 'refs'?"},
			want: "[fields] unknown: Did you mean 'refs'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticList_Severities(t *testing.T) {
	list := NewDiagnosticList()

	if list.HasErrors() {
		t.Error("new list should not have errors")
	}
	if list.ToError() != nil {
		t.Error("ToError() on empty list should be nil")
	}

	list.AddWarning(CheckValues, "values", "no values")
	if list.HasErrors() {
		t.Error("warnings alone should not count as errors")
	}
	if list.ToError() != nil {
		t.Error("ToError() with only warnings should be nil")
	}

	list.AddError(CheckMatches, "values[0]", "undeclared predicate")
	if !list.HasErrors() {
		t.Error("expected HasErrors() after AddError")
	}
	if list.Count() != 2 {
		t.Errorf("Count() = %d, want 2", list.Count())
	}
	if got := len(list.Errors()); got != 1 {
		t.Errorf("len(Errors()) = %d, want 1", got)
	}
	if got := len(list.Warnings()); got != 1 {
		t.Errorf("len(Warnings()) = %d, want 1", got)
	}
	if got := len(list.ByCheck(CheckMatches)); got != 1 {
		t.Errorf("len(ByCheck(matches)) = %d, want 1", got)
	}

	err := list.ToError()
	if err == nil {
		t.Fatal("expected ToError() to return the list")
	}
	if !strings.Contains(err.Error(), "found 1 error(s)") {
		t.Errorf("Error() = %q, want error count", err.Error())
	}
	if strings.Contains(err.Error(), "no values") {
		t.Error("Error() should only list error-level diagnostics")
	}
}

func TestDiagnosticList_Merge(t *testing.T) {
	a := NewDiagnosticList()
	a.AddError(CheckFields, "", "one")
	b := NewDiagnosticList()
	b.AddError(CheckPredicates, "", "two")
	b.AddWarning(CheckValues, "", "three")

	a.Merge(b)
	a.Merge(nil)

	if a.Count() != 3 {
		t.Errorf("Count() after merge = %d, want 3", a.Count())
	}
}

func TestSuggestField(t *testing.T) {
	valid := []string{"namespace", "description", "version", "predicates", "refs", "exclusive", "expanded", "values"}

	tests := []struct {
		name    string
		unknown string
		want    string
	}{
		{name: "typo", unknown: "namspace", want: "Did you mean 'namespace'?"},
		{name: "case", unknown: "Version", want: "Did you mean 'version'?"},
		{name: "plural", unknown: "value", want: "Did you mean 'values'?"},
		{name: "nothing close", unknown: "uuid", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestField(tt.unknown, valid); got != tt.want {
				t.Errorf("SuggestField(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}

	if got := SuggestField("x", nil); got != "" {
		t.Errorf("SuggestField with no candidates = %q, want empty", got)
	}
}

func TestSuggestAllowedFields(t *testing.T) {
	got := SuggestAllowedFields([]string{"value", "colour", "expanded"})
	want := "Allowed fields: colour, expanded, value"
	if got != want {
		t.Errorf("SuggestAllowedFields() = %q, want %q", got, want)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"refs", "ref", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
