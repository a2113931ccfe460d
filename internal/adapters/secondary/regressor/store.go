package regressor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"property-price-service/internal/core/domain"
	ports "property-price-service/internal/core/ports/output"
)

// Store persists frozen models as JSON files.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (*Store) Load(path string) (ports.InferenceArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataLoad, err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse model %s: %v", domain.ErrDataLoad, path, err)
	}
	if len(m.Coefficients) != len(m.Columns) {
		return nil, fmt.Errorf("%w: model %s: %d coefficients for %d columns", domain.ErrDataLoad, path, len(m.Coefficients), len(m.Columns))
	}
	return &m, nil
}

func (*Store) Save(path string, m *Model) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}
