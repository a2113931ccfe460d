package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"property-price-service/internal/core/domain"
	ports "property-price-service/internal/core/ports/output"
)

const predictionCurrency = "AUD"

// PredictionService orchestrates profile and artifact loading, feature
// resolution and inference. The profile and artifact are loaded lazily
// on first use behind a sync.Once, so a first wave of concurrent
// requests triggers exactly one load; afterwards both are immutable and
// read without locks.
type PredictionService struct {
	reader    ports.DatasetReader
	store     ports.ArtifactStore
	dataPath  string
	modelPath string
	target    string
	bindings  []domain.AliasBinding

	once     sync.Once
	initErr  error
	profile  *domain.DatasetProfile
	resolver *FeatureResolver
	artifact ports.InferenceArtifact
}

func NewPredictionService(reader ports.DatasetReader, store ports.ArtifactStore, dataPath, modelPath, target string, bindings []domain.AliasBinding) *PredictionService {
	return &PredictionService{
		reader:    reader,
		store:     store,
		dataPath:  dataPath,
		modelPath: modelPath,
		target:    target,
		bindings:  bindings,
	}
}

func (s *PredictionService) init(ctx context.Context) error {
	s.once.Do(func() {
		profile, err := NewProfileBuilder(s.reader).Build(ctx, s.dataPath, s.target, s.bindings)
		if err != nil {
			s.initErr = err
			return
		}
		artifact, err := s.store.Load(s.modelPath)
		if err != nil {
			s.initErr = err
			return
		}
		if err := checkSchema(profile, artifact); err != nil {
			s.initErr = err
			return
		}
		s.profile = profile
		s.resolver = NewFeatureResolver(profile)
		s.artifact = artifact
	})
	return s.initErr
}

// checkSchema requires the artifact's expected columns and the
// profile's non-target columns to be the same set.
func checkSchema(profile *domain.DatasetProfile, artifact ports.InferenceArtifact) error {
	want := make(map[string]bool, len(profile.Columns))
	for _, col := range profile.Columns {
		want[col.Name] = true
	}
	got := artifact.FeatureColumns()
	for _, name := range got {
		if !want[name] {
			return fmt.Errorf("%w: artifact expects column %q absent from dataset", domain.ErrSchema, name)
		}
		delete(want, name)
	}
	for name := range want {
		return fmt.Errorf("%w: dataset column %q unknown to artifact", domain.ErrSchema, name)
	}
	return nil
}

// Profile returns the cached dataset profile, loading it if needed.
func (s *PredictionService) Profile(ctx context.Context) (*domain.DatasetProfile, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.profile, nil
}

// Resolve merges overrides into a complete feature row without
// invoking the model.
func (s *PredictionService) Resolve(ctx context.Context, overrides []domain.Override) (*domain.ResolvedRequest, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	return s.resolver.Resolve(overrides)
}

// Predict resolves the overrides and runs the frozen artifact on the
// resulting row. Prediction is a pure function of the resolved
// features, so identical input always yields identical output.
func (s *PredictionService) Predict(ctx context.Context, overrides []domain.Override) (*domain.Prediction, error) {
	resolved, err := s.Resolve(ctx, overrides)
	if err != nil {
		return nil, err
	}

	value, err := s.artifact.Predict(resolved.Features)
	if err != nil {
		if errors.Is(err, domain.ErrInference) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInference, err)
	}

	return &domain.Prediction{
		Value:    value,
		Currency: predictionCurrency,
		Features: resolved.Features,
		Applied:  resolved.Applied,
	}, nil
}

// DataPath, ModelPath and Target expose the configured locations for
// health reporting.
func (s *PredictionService) DataPath() string  { return s.dataPath }
func (s *PredictionService) ModelPath() string { return s.modelPath }
func (s *PredictionService) Target() string    { return s.target }
