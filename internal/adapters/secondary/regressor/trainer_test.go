package regressor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-price-service/internal/core/domain"
)

// linearTable returns rows following Price = 2*Rooms + 1 exactly.
func linearTable(n int) *domain.Table {
	rows := make([][]string, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", 2*i+1),
		})
	}
	return &domain.Table{Header: []string{"Rooms", "Price"}, Rows: rows}
}

func TestTrainerFit_RecoversLinearRelation(t *testing.T) {
	model, err := NewTrainer().Fit(linearTable(20), TrainConfig{
		TargetColumn: "Price",
		TestSize:     0.2,
		Seed:         42,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rooms"}, model.FeatureColumns())
	assert.InDelta(t, 2.0, model.Coefficients[0], 1e-3)
	assert.InDelta(t, 1.0, model.Intercept, 1e-2)
	assert.InDelta(t, 1.0, model.Metrics.R2, 1e-3)
	assert.Less(t, model.Metrics.RMSE, 0.1)

	value, err := model.Predict(domain.FeatureVector{"Rooms": domain.Numeric(30)})
	require.NoError(t, err)
	assert.InDelta(t, 61.0, value, 0.1)
}

func TestTrainerFit_SameSeedSameModel(t *testing.T) {
	cfg := TrainConfig{TargetColumn: "Price", TestSize: 0.2, Seed: 7}

	first, err := NewTrainer().Fit(linearTable(20), cfg)
	require.NoError(t, err)
	second, err := NewTrainer().Fit(linearTable(20), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Coefficients, second.Coefficients)
	assert.Equal(t, first.Intercept, second.Intercept)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestTrainerFit_TargetMissing(t *testing.T) {
	_, err := NewTrainer().Fit(linearTable(5), TrainConfig{TargetColumn: "Cost"})
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestTrainerFit_NoLabeledRows(t *testing.T) {
	table := &domain.Table{
		Header: []string{"Rooms", "Price"},
		Rows:   [][]string{{"2", ""}, {"3", ""}},
	}
	_, err := NewTrainer().Fit(table, TrainConfig{TargetColumn: "Price"})
	assert.ErrorIs(t, err, domain.ErrDataLoad)
}

func TestTrainerFit_CategoricalTargetEncoding(t *testing.T) {
	rows := make([][]string, 0, 20)
	for i := 1; i <= 20; i++ {
		seg := "cheap"
		price := 100 + i // keep rows distinct so dedup leaves them alone
		if i%2 == 0 {
			seg = "dear"
			price = 500 + i
		}
		rows = append(rows, []string{seg, fmt.Sprintf("%d", i), fmt.Sprintf("%d", price)})
	}
	table := &domain.Table{Header: []string{"Segment", "ID", "Price"}, Rows: rows}

	model, err := NewTrainer().Fit(table, TrainConfig{TargetColumn: "Price", TestSize: 0.2, Seed: 42})
	require.NoError(t, err)

	var segment ColumnSpec
	for _, col := range model.Columns {
		if col.Name == "Segment" {
			segment = col
		}
	}
	require.Equal(t, domain.RoleCategorical, segment.Role)
	assert.Len(t, segment.Levels, 2)
	assert.Greater(t, segment.Levels["dear"], segment.Levels["cheap"])
}

func TestModelPredict_UnseenCategoryUsesFallback(t *testing.T) {
	model := &Model{
		TargetColumn: "Price",
		Columns: []ColumnSpec{
			{Name: "Suburb", Role: domain.RoleCategorical, Levels: map[string]float64{"Richmond": 100}, Fallback: 40},
		},
		Intercept:    1,
		Coefficients: []float64{2},
	}

	known, err := model.Predict(domain.FeatureVector{"Suburb": domain.Categorical("Richmond")})
	require.NoError(t, err)
	assert.Equal(t, 201.0, known)

	unseen, err := model.Predict(domain.FeatureVector{"Suburb": domain.Categorical("Atlantis")})
	require.NoError(t, err)
	assert.Equal(t, 81.0, unseen)
}

func TestModelPredict_MissingColumn(t *testing.T) {
	model := &Model{
		Columns:      []ColumnSpec{{Name: "Rooms", Role: domain.RoleNumeric}},
		Coefficients: []float64{1},
	}

	_, err := model.Predict(domain.FeatureVector{})
	assert.ErrorIs(t, err, domain.ErrInference)
}

func TestModelPredict_RoleMismatch(t *testing.T) {
	model := &Model{
		Columns:      []ColumnSpec{{Name: "Rooms", Role: domain.RoleNumeric}},
		Coefficients: []float64{1},
	}

	_, err := model.Predict(domain.FeatureVector{"Rooms": domain.Categorical("four")})
	assert.ErrorIs(t, err, domain.ErrInference)
}
