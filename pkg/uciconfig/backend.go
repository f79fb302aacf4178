package uciconfig

import (
	"context"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
)

// Backend defines the bidirectional conversion every UCI flavour must provide.
type Backend interface {
	// Name returns the backend identifier (e.g., "openwrt").
	Name() string

	// Parse turns every package in the bundle into a document, in bundle order.
	Parse(ctx context.Context, bundle *Bundle, opts ParseOptions) ([]*uci.Document, error)

	// Render serializes documents back into a bundle; names[i] labels docs[i].
	Render(ctx context.Context, names []string, docs []*uci.Document, opts RenderOptions) (*Bundle, error)
}
