package testutil

// FixedIDGenerator returns the same model identifier every time.
//
// This keeps String() output and log attributes stable, so golden files
// and log assertions do not depend on a fresh UUID.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator returning id.
// If id is empty, Generate() returns "test-model".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-model"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed identifier.
//
// Implements model.IDGenerator interface.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
