// Package loader reads taxonomy definition files.
//
// Loading is the only place where file I/O and JSON decoding happen. Failures
// are not propagated: the loader logs them and returns an empty Document, and the
// validator reports that sentinel as an empty or malformed file.
//
//	l := loader.New(logger).WithMaxFileSize(cfg.Check.MaxFileSize)
//	doc := l.Load("machinetag.json")
//	if doc.IsEmpty() {
//	    // rejected by the validator with a "file is empty" diagnostic
//	}
//
// Decode is the reader-based variant used by tests and callers holding the
// document in memory.
package loader
