package uciconfig

import "time"

// Package represents a single UCI configuration file.
// Name is the logical package name (for /etc/config/<name> it is the base name),
// Path is where the content was read from or should be written to.
type Package struct {
	Name    string // Package name (e.g., "dhcp", "network")
	Path    string // Source or destination path, may be empty for in-memory content
	Content []byte // Raw UCI text
}

// Metadata stores information about how and when the bundle was produced.
type Metadata struct {
	Format    string            // Format identifier, always "uci" for now
	Backend   string            // Backend name that generated this bundle
	Generated time.Time         // Timestamp when the bundle was created
	Custom    map[string]string // Extensible metadata for backend-specific information
}

// Bundle groups one or more UCI packages processed together.
type Bundle struct {
	Packages []Package
	Metadata Metadata
}

// NewBundle creates an empty Bundle with initialized metadata.
// The Generated timestamp is set to the current time.
func NewBundle(format, backend string) *Bundle {
	return &Bundle{
		Packages: make([]Package, 0),
		Metadata: Metadata{
			Format:    format,
			Backend:   backend,
			Generated: time.Now(),
			Custom:    make(map[string]string),
		},
	}
}

// Add appends a package and returns the bundle for chaining.
func (b *Bundle) Add(name, path string, content []byte) *Bundle {
	b.Packages = append(b.Packages, Package{Name: name, Path: path, Content: content})
	return b
}
