package ports

import "property-price-service/internal/core/domain"

// InferenceArtifact is the frozen trained model. Implementations must be
// safe for unsynchronized concurrent Predict calls; the artifact is
// loaded once and treated as immutable afterwards.
type InferenceArtifact interface {
	// FeatureColumns returns the canonical columns the artifact expects,
	// in the order its feature row must be assembled.
	FeatureColumns() []string
	// Predict produces a point prediction from a complete feature
	// vector. Internal failures surface as domain.ErrInference.
	Predict(row domain.FeatureVector) (float64, error)
}

// ArtifactStore loads persisted inference artifacts.
type ArtifactStore interface {
	// Load reads a frozen artifact from path. A missing or unreadable
	// file yields domain.ErrDataLoad; a corrupt payload yields
	// domain.ErrDataLoad as well.
	Load(path string) (InferenceArtifact, error)
}
