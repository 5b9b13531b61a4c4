package taxonomy

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDocument_IsEmpty(t *testing.T) {
	if !Document(nil).IsEmpty() {
		t.Error("nil document should be empty")
	}
	if !(Document{}).IsEmpty() {
		t.Error("zero-length document should be empty")
	}
	if (Document{"namespace": "n"}).IsEmpty() {
		t.Error("document with a key should not be empty")
	}
}

func TestDocument_Keys(t *testing.T) {
	doc := Document{"version": "1", "namespace": "n", "description": "d"}
	want := []string{"description", "namespace", "version"}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestDocument_Collections(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantLen int
		wantOK  bool
	}{
		{name: "absent", doc: Document{}, wantLen: 0, wantOK: true},
		{name: "null", doc: Document{FieldValues: nil, FieldPredicates: nil}, wantLen: 0, wantOK: true},
		{name: "list", doc: Document{FieldValues: []any{1, 2}, FieldPredicates: []any{1, 2}}, wantLen: 2, wantOK: true},
		{name: "empty object", doc: Document{FieldValues: map[string]any{}, FieldPredicates: map[string]any{}}, wantLen: 0, wantOK: true},
		{name: "empty string", doc: Document{FieldValues: "", FieldPredicates: ""}, wantLen: 0, wantOK: true},
		{name: "not a list", doc: Document{FieldValues: "x", FieldPredicates: "x"}, wantLen: 0, wantOK: false},
		{name: "non-empty object", doc: Document{FieldValues: map[string]any{"a": 1}, FieldPredicates: map[string]any{"a": 1}}, wantLen: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds, ok := tt.doc.Predicates()
			if len(preds) != tt.wantLen || ok != tt.wantOK {
				t.Errorf("Predicates() = %d items, ok=%v; want %d, %v", len(preds), ok, tt.wantLen, tt.wantOK)
			}
			values, ok := tt.doc.Values()
			if len(values) != tt.wantLen || ok != tt.wantOK {
				t.Errorf("Values() = %d items, ok=%v; want %d, %v", len(values), ok, tt.wantLen, tt.wantOK)
			}
		})
	}
}

func TestIsEmptyValue(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, true},
		{false, true},
		{true, false},
		{"", true},
		{"x", false},
		{0.0, true},
		{2.0, false},
		{json.Number("0"), true},
		{json.Number("3"), false},
		{[]any{}, true},
		{[]any{1}, false},
		{map[string]any{}, true},
		{map[string]any{"k": "v"}, false},
	}

	for _, tt := range tests {
		if got := IsEmptyValue(tt.value); got != tt.want {
			t.Errorf("IsEmptyValue(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"s", "string"},
		{true, "boolean"},
		{1.5, "number"},
		{[]any{}, "array"},
		{map[string]any{}, "object"},
	}

	for _, tt := range tests {
		if got := TypeName(tt.value); got != tt.want {
			t.Errorf("TypeName(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
