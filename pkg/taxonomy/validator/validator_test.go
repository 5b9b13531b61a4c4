package validator

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"misp-hq/taxcheck/pkg/taxonomy"
	taxErrors "misp-hq/taxcheck/pkg/taxonomy/errors"
)

const validDoc = `{
	"namespace": "n",
	"description": "d",
	"version": "1",
	"predicates": [{"value": "p1"}],
	"values": [{"predicate": "p1", "entry": [{"value": "v1", "expanded": "V1"}]}]
}`

func parseDoc(t *testing.T, s string) taxonomy.Document {
	t.Helper()
	var doc taxonomy.Document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("invalid test document: %v", err)
	}
	return doc
}

func parseValue(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid test value: %v", err)
	}
	return v
}

func silentReporter() *reporter {
	return newReporter(slog.New(slog.NewTextHandler(io.Discard, nil)), true)
}

func bufferedValidator(buf *bytes.Buffer) *Validator {
	return NewValidator(slog.New(slog.NewTextHandler(buf, nil)))
}

func TestValidate_EndToEnd(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantValid  bool
		wantFailed taxErrors.Check
		wantChecks []taxErrors.Check
	}{
		{
			name:      "valid taxonomy",
			doc:       validDoc,
			wantValid: true,
			wantChecks: []taxErrors.Check{
				taxErrors.CheckFields, taxErrors.CheckPredicates, taxErrors.CheckValues, taxErrors.CheckMatches,
			},
		},
		{
			name:       "value group references undeclared predicate",
			doc:        strings.Replace(validDoc, `"predicate": "p1"`, `"predicate": "p2"`, 1),
			wantFailed: taxErrors.CheckMatches,
			wantChecks: []taxErrors.Check{
				taxErrors.CheckFields, taxErrors.CheckPredicates, taxErrors.CheckValues, taxErrors.CheckMatches,
			},
		},
		{
			name:       "empty document",
			doc:        `{}`,
			wantFailed: taxErrors.CheckDocument,
		},
		{
			name:       "missing predicates",
			doc:        `{"namespace": "n", "description": "d", "version": "1"}`,
			wantFailed: taxErrors.CheckFields,
			wantChecks: []taxErrors.Check{taxErrors.CheckFields},
		},
		{
			name:       "faulty predicate stops before values",
			doc:        `{"namespace": "n", "description": "d", "version": "1", "predicates": [{"value": 1}], "values": "bad"}`,
			wantFailed: taxErrors.CheckPredicates,
			wantChecks: []taxErrors.Check{taxErrors.CheckFields, taxErrors.CheckPredicates},
		},
		{
			name:       "predicates and no values",
			doc:        `{"namespace": "n", "description": "d", "version": "1", "predicates": [{"value": "p1"}]}`,
			wantValid:  true,
			wantChecks: []taxErrors.Check{taxErrors.CheckFields, taxErrors.CheckPredicates, taxErrors.CheckValues, taxErrors.CheckMatches},
		},
		{
			name:       "empty object as values",
			doc:        `{"namespace": "n", "description": "d", "version": "1", "predicates": [{"value": "p1"}], "values": {}}`,
			wantValid:  true,
			wantChecks: []taxErrors.Check{taxErrors.CheckFields, taxErrors.CheckPredicates, taxErrors.CheckValues, taxErrors.CheckMatches},
		},
		{
			name: "entry description of another type",
			doc: `{"namespace": "n", "description": "d", "version": "1", "predicates": [{"value": "p1"}],
				"values": [{"predicate": "p1", "entry": [{"value": "v1", "expanded": "V1", "description": 1}]}]}`,
			wantValid:  true,
			wantChecks: []taxErrors.Check{taxErrors.CheckFields, taxErrors.CheckPredicates, taxErrors.CheckValues, taxErrors.CheckMatches},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator(nil).WithSilent(true).Validate(parseDoc(t, tt.doc))

			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v; diagnostics: %s", result.Valid, tt.wantValid, result.Diagnostics.Error())
			}
			if result.FailedCheck != tt.wantFailed {
				t.Errorf("FailedCheck = %q, want %q", result.FailedCheck, tt.wantFailed)
			}
			if !reflect.DeepEqual(result.Checks, tt.wantChecks) {
				t.Errorf("Checks = %v, want %v", result.Checks, tt.wantChecks)
			}
			if tt.wantValid && result.Diagnostics.HasErrors() {
				t.Errorf("valid document produced errors: %s", result.Diagnostics.Error())
			}
			if !tt.wantValid && !result.Diagnostics.HasErrors() {
				t.Error("invalid document produced no error diagnostics")
			}
		})
	}
}

func TestValidate_UndeclaredPredicateDiagnostic(t *testing.T) {
	doc := parseDoc(t, strings.Replace(validDoc, `"predicate": "p1"`, `"predicate": "p2"`, 1))
	result := NewValidator(nil).WithSilent(true).Validate(doc)

	diags := result.Diagnostics.ByCheck(taxErrors.CheckMatches)
	if len(diags) != 1 {
		t.Fatalf("got %d matches diagnostics, want 1", len(diags))
	}
	msg := diags[0].Message
	if !strings.Contains(msg, "v1") || !strings.Contains(msg, "p2") {
		t.Errorf("diagnostic %q should name v1 and p2", msg)
	}
	if diags[0].Suggestion != "Did you mean 'p1'?" {
		t.Errorf("Suggestion = %q, want did-you-mean p1", diags[0].Suggestion)
	}
}

func TestValidate_EmptyDocument(t *testing.T) {
	for _, doc := range []taxonomy.Document{nil, {}} {
		result := NewValidator(nil).WithSilent(true).Validate(doc)
		if result.Valid {
			t.Fatal("empty document must be invalid")
		}
		if len(result.Checks) != 0 {
			t.Errorf("Checks = %v, want none", result.Checks)
		}
		if got := result.Diagnostics.Errors(); len(got) != 1 || got[0].Message != EmptyDocumentMessage {
			t.Errorf("Errors() = %v, want single empty-document diagnostic", got)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	docs := []string{validDoc, `{"namespace": "n"}`, strings.Replace(validDoc, "p1\"}]", "p3\"}]", 1)}

	for _, s := range docs {
		doc := parseDoc(t, s)
		before, _ := json.Marshal(doc)

		v := NewValidator(nil).WithSilent(true)
		first := v.Validate(doc)
		second := v.Validate(doc)

		if first.Valid != second.Valid || first.FailedCheck != second.FailedCheck {
			t.Errorf("verdict changed between runs: %v/%q then %v/%q",
				first.Valid, first.FailedCheck, second.Valid, second.FailedCheck)
		}
		if first.Diagnostics.Count() != second.Diagnostics.Count() {
			t.Errorf("diagnostic count changed: %d then %d", first.Diagnostics.Count(), second.Diagnostics.Count())
		}

		after, _ := json.Marshal(doc)
		if !bytes.Equal(before, after) {
			t.Error("validation mutated the document")
		}
	}
}

func TestValidate_SilentDoesNotChangeVerdict(t *testing.T) {
	docs := []string{
		validDoc,
		`{}`,
		`{"namespace": "n", "description": "d", "version": "1", "predicates": []}`,
		`{"namespace": "n", "description": "d", "version": "1", "predicates": [{"value": "a"}], "values": []}`,
		strings.Replace(validDoc, `"predicate": "p1"`, `"predicate": "nope"`, 1),
	}

	for _, s := range docs {
		buf := &bytes.Buffer{}
		loud := bufferedValidator(buf).Validate(parseDoc(t, s))

		silentBuf := &bytes.Buffer{}
		quiet := bufferedValidator(silentBuf).WithSilent(true).Validate(parseDoc(t, s))

		if loud.Valid != quiet.Valid {
			t.Errorf("%s: silent verdict %v != verbose verdict %v", s, quiet.Valid, loud.Valid)
		}
		if silentBuf.Len() != 0 {
			t.Errorf("silent validator logged: %q", silentBuf.String())
		}
		if !loud.Valid && buf.Len() == 0 {
			t.Errorf("%s: verbose validator logged nothing for an invalid document", s)
		}
	}
}

func TestCheckFields(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{name: "mandatory only", keys: []string{"namespace", "description", "version", "predicates"}, want: true},
		{
			name: "all allowed",
			keys: []string{"namespace", "description", "version", "predicates", "refs", "exclusive", "expanded", "values"},
			want: true,
		},
		{name: "missing namespace", keys: []string{"description", "version", "predicates"}, want: false},
		{name: "missing version", keys: []string{"namespace", "description", "predicates"}, want: false},
		{name: "unknown field", keys: []string{"namespace", "description", "version", "predicates", "author"}, want: false},
		{name: "unknown and missing", keys: []string{"namespace", "author"}, want: false},
		{name: "no keys", keys: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewValidator(nil).WithSilent(true).CheckFields(tt.keys); got != tt.want {
				t.Errorf("CheckFields(%v) = %v, want %v", tt.keys, got, tt.want)
			}
		})
	}
}

func TestCheckFields_ReportsUnknownAndMissingSeparately(t *testing.T) {
	rep := silentReporter()
	checkFields([]string{"namepsace", "description", "version", "predicates"}, rep)

	errs := rep.list.Errors()
	if len(errs) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "not allowed: 'namepsace'") {
		t.Errorf("first diagnostic = %q, want unknown field listing", errs[0].Message)
	}
	if !strings.Contains(errs[0].Suggestion, "Did you mean 'namespace'?") {
		t.Errorf("Suggestion = %q, want did-you-mean namespace", errs[0].Suggestion)
	}
	if !strings.Contains(errs[1].Message, "missing: 'namespace'") {
		t.Errorf("second diagnostic = %q, want missing field listing", errs[1].Message)
	}
}

func TestCheckPredicates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "single name", raw: `[{"value": "a"}]`, want: true},
		{name: "all fields", raw: `[{"value": "a", "expanded": "A", "description": "d", "colour": "#ffffff"}]`, want: true},
		{name: "empty", raw: `[]`, want: false},
		{name: "null", raw: `null`, want: false},
		{name: "extra field", raw: `[{"value": "a", "numerical_value": "1"}]`, want: false},
		{name: "non-string colour", raw: `[{"value": "a", "colour": 1}]`, want: false},
		{name: "non-string value", raw: `[{"value": true}]`, want: false},
		{name: "missing value", raw: `[{"expanded": "A"}]`, want: false},
		{name: "record is not an object", raw: `["a"]`, want: false},
		{name: "not a list", raw: `{"value": "a"}`, want: false},
		{name: "one faulty among many", raw: `[{"value": "a"}, {"value": "b"}, {"value": "c", "x": "y"}]`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewValidator(nil).WithSilent(true).CheckPredicates(parseValue(t, tt.raw)); got != tt.want {
				t.Errorf("CheckPredicates(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCheckPredicates_ReportsEveryFaultyPredicate(t *testing.T) {
	rep := silentReporter()
	raw := parseValue(t, `[{"value": "a", "x": "1"}, {"value": "b"}, {"expanded": 2}]`)
	if checkPredicates(raw, rep) {
		t.Fatal("expected failure")
	}

	errs := rep.list.Errors()
	if errs[0].Message != "predicates - There are 2 invalid predicates out of 3." {
		t.Errorf("summary = %q", errs[0].Message)
	}

	paths := map[string]bool{}
	for _, d := range errs {
		paths[d.Path] = true
	}
	for _, want := range []string{"predicates[0]", "predicates[2]", "predicates[2].expanded"} {
		if !paths[want] {
			t.Errorf("missing diagnostic at %s; got %v", want, errs)
		}
	}
	if paths["predicates[1]"] {
		t.Error("valid predicate was reported")
	}
}

func TestCheckValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "absent", raw: `null`, want: true},
		{name: "empty", raw: `[]`, want: true},
		{name: "empty object", raw: `{}`, want: true},
		{name: "empty string", raw: `""`, want: true},
		{name: "false", raw: `false`, want: true},
		{name: "non-empty object", raw: `{"predicate": "p"}`, want: false},
		{name: "valid", raw: `[{"predicate": "p", "entry": [{"value": "v", "expanded": "V", "description": "d"}]}]`, want: true},
		{name: "empty entry list", raw: `[{"predicate": "p", "entry": []}]`, want: true},
		{name: "group extra field", raw: `[{"predicate": "p", "entry": [], "colour": "red"}]`, want: false},
		{name: "group missing entry", raw: `[{"predicate": "p"}]`, want: false},
		{name: "group missing predicate", raw: `[{"entry": []}]`, want: false},
		{name: "predicate not a string", raw: `[{"predicate": 3, "entry": []}]`, want: false},
		{name: "entry not a list", raw: `[{"predicate": "p", "entry": {"value": "v"}}]`, want: false},
		{name: "entry extra field", raw: `[{"predicate": "p", "entry": [{"value": "v", "expanded": "V", "colour": "c"}]}]`, want: false},
		{name: "entry missing expanded", raw: `[{"predicate": "p", "entry": [{"value": "v"}]}]`, want: false},
		{name: "entry missing value", raw: `[{"predicate": "p", "entry": [{"expanded": "V"}]}]`, want: false},
		{name: "entry description not a string", raw: `[{"predicate": "p", "entry": [{"value": "v", "expanded": "V", "description": 1}]}]`, want: true},
		{name: "entry not an object", raw: `[{"predicate": "p", "entry": ["v"]}]`, want: false},
		{name: "group not an object", raw: `["p"]`, want: false},
		{name: "not a list", raw: `"values"`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewValidator(nil).WithSilent(true).CheckValues(parseValue(t, tt.raw)); got != tt.want {
				t.Errorf("CheckValues(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCheckValues_EmptyWarningOnlyWhenVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	if !bufferedValidator(buf).CheckValues(nil) {
		t.Fatal("empty values must be valid")
	}
	if !strings.Contains(buf.String(), "no values is allowed") || !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected advisory warning, got %q", buf.String())
	}

	buf.Reset()
	if !bufferedValidator(buf).WithSilent(true).CheckValues([]any{}) {
		t.Fatal("empty values must be valid")
	}
	if buf.Len() != 0 {
		t.Errorf("silent run logged %q", buf.String())
	}

	rep := silentReporter()
	checkValues(nil, rep)
	if rep.list.HasErrors() || len(rep.list.Warnings()) != 1 {
		t.Errorf("diagnostics = %v, want a single warning", rep.list.Diagnostics)
	}
}

func TestCheckValues_ReportsEntryPaths(t *testing.T) {
	rep := silentReporter()
	raw := parseValue(t, `[
		{"predicate": "p", "entry": [{"value": "ok", "expanded": "OK"}]},
		{"predicate": "q", "entry": [{"value": "v", "expanded": "V"}, {"value": "w", "expanded": "W", "description": 7, "colour": "c"}]}
	]`)
	if checkValues(raw, rep) {
		t.Fatal("expected failure")
	}

	errs := rep.list.Errors()
	if errs[0].Message != "values - There are 1 invalid values out of 2." {
		t.Errorf("summary = %q", errs[0].Message)
	}

	var found bool
	for _, d := range errs {
		if d.Path == "values[1].entry[1].description" {
			found = true
			if !strings.Contains(d.Message, "Detected type: number") {
				t.Errorf("type diagnostic = %q", d.Message)
			}
		}
		if strings.HasPrefix(d.Path, "values[0]") {
			t.Errorf("valid group reported: %v", d)
		}
	}
	if !found {
		t.Errorf("no diagnostic for values[1].entry[1].description in %v", errs)
	}
}

func TestCheckMatches_ScansEveryGroup(t *testing.T) {
	doc := parseDoc(t, `{
		"namespace": "n", "description": "d", "version": "1",
		"predicates": [{"value": "p1"}, {"value": "p2"}],
		"values": [
			{"predicate": "p1", "entry": [{"value": "a", "expanded": "A"}]},
			{"predicate": "p9", "entry": [{"value": "b", "expanded": "B"}, {"value": "c", "expanded": "C"}]},
			{"predicate": "p2", "entry": [{"value": "d", "expanded": "D"}]},
			{"predicate": "p8", "entry": [{"value": "e", "expanded": "E"}]}
		]
	}`)

	rep := silentReporter()
	if checkMatches(doc, rep) {
		t.Fatal("expected failure")
	}

	errs := rep.list.ByCheck(taxErrors.CheckMatches)
	want := []string{"values[1].entry[0]", "values[1].entry[1]", "values[3].entry[0]"}
	if len(errs) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %v", len(errs), len(want), errs)
	}
	for i, d := range errs {
		if d.Path != want[i] {
			t.Errorf("diagnostic %d at %s, want %s", i, d.Path, want[i])
		}
	}
}

func TestCheckMatches_AllResolve(t *testing.T) {
	if !NewValidator(nil).WithSilent(true).CheckMatches(parseDoc(t, validDoc)) {
		t.Error("expected every reference to resolve")
	}
}
