package memutils

// Validatable is anything that can check its own structural invariants. Chunk metadata and the
// containers built on it implement it so DebugValidate can act on them.
type Validatable interface {
	Validate() error
}
