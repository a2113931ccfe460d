package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"property-price-service/internal/core/domain"
	ports "property-price-service/internal/core/ports/output"
)

// MockDatasetReader is a mock of DatasetReader.
type MockDatasetReader struct {
	mock.Mock
}

func (m *MockDatasetReader) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

// MockArtifactStore is a mock of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Load(path string) (ports.InferenceArtifact, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.InferenceArtifact), args.Error(1)
}

// MockArtifact is a mock of InferenceArtifact.
type MockArtifact struct {
	mock.Mock
}

func (m *MockArtifact) FeatureColumns() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockArtifact) Predict(row domain.FeatureVector) (float64, error) {
	args := m.Called(row)
	return args.Get(0).(float64), args.Error(1)
}

// MockUserRepo is a mock of UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
