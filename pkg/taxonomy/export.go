package taxonomy

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Taxonomy is the typed shape of a valid taxonomy definition. It is only used
// to publish the schema; checking works on the raw Document.
type Taxonomy struct {
	Namespace   string       `json:"namespace"`
	Description string       `json:"description"`
	Version     Version      `json:"version"`
	Predicates  []Predicate  `json:"predicates" jsonschema:"minItems=1"`
	Values      []ValueGroup `json:"values,omitempty"`
	Refs        any          `json:"refs,omitempty"`
	Exclusive   any          `json:"exclusive,omitempty"`
	Expanded    any          `json:"expanded,omitempty"`
}

// Version is a taxonomy version. Published taxonomies use integers, strings
// are accepted too.
type Version json.Number

// JSONSchema implements jsonschema.JSONSchemer.
func (Version) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer"},
			{Type: "string"},
		},
	}
}

// Predicate is a named category under which values are grouped.
type Predicate struct {
	Value       string `json:"value"`
	Expanded    string `json:"expanded,omitempty"`
	Description string `json:"description,omitempty"`
	Colour      string `json:"colour,omitempty"`
}

// ValueGroup pairs a declared predicate with its entries.
type ValueGroup struct {
	Predicate string  `json:"predicate"`
	Entry     []Entry `json:"entry"`
}

// Entry is one concrete value under a predicate.
type Entry struct {
	Value       string `json:"value"`
	Expanded    string `json:"expanded"`
	Description string `json:"description,omitempty"`
}

// SchemaID is the $id of the generated schema.
const SchemaID = "https://github.com/misp-hq/taxcheck/schemas/machinetag.json"

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document for the
// structural part of a taxonomy definition. Cross-references between values
// and predicates cannot be expressed in JSON Schema and are not included.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Taxonomy{})
	s.ID = SchemaID
	s.Title = "MISP taxonomy definition"
	s.Description = "Structural schema for machinetag.json taxonomy files (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal taxonomy schema: %w", err)
	}
	return data, nil
}

// ValidateSchema checks data against the generated schema. It returns nil
// when data is structurally valid and a *sjsonschema.ValidationError listing
// every violation otherwise.
func ValidateSchema(data []byte) error {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return err
	}

	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource(SchemaID, schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile(SchemaID)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return sch.Validate(doc)
}
