package uciconfig

import "github.com/honeybbq/uciconfig/pkg/diag"

// ParseOptions controls how UCI text is turned into a document.
type ParseOptions struct {
	Sink   diag.Sink // Receives non-fatal diagnostics; nil discards them
	Strict bool      // Return an error wrapping every diagnostic after parsing
}

// RenderOptions controls how a document is serialized.
type RenderOptions struct {
	Sink        diag.Sink // Receives non-fatal diagnostics; nil discards them
	OmitPackage bool      // Skip the "package <name>" line even when the document has one
}
