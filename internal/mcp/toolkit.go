package mcp

// Toolkit is the capability surface a toolkit package exposes to the
// registrar. Construction is two-phase: factories return an inert value, and
// Init performs the work that may fail (credential use, client construction).
// Register contributes tool specs; it must not perform I/O.
type Toolkit interface {
	ID() string
	Version() string
	Description() string
	Init(ctx ToolkitContext) error
	Register(reg Registry) error
}
