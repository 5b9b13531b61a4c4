// Package taxonomy defines the taxonomy definition document (MISP
// machinetag.json) and its field vocabulary.
//
// A Document is the raw decoded JSON object. Checks work on the raw form rather
// than on typed structs because they must see unknown keys and values of the
// wrong type in order to report them.
//
// The typed mirror (Taxonomy, Predicate, ValueGroup, Entry) exists to publish a
// JSON Schema of the structural rules:
//
//	data, err := taxonomy.GenerateJSONSchema()
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(data)
//
// Subpackages:
//
//	loader    - reads a file into a Document, or the empty sentinel on failure
//	validator - the check pipeline (fields, predicates, values, matches)
//	errors    - diagnostics produced by the checks
package taxonomy
