package regressor

import (
	"fmt"
	"time"

	"property-price-service/internal/core/domain"
)

// ColumnSpec freezes how one feature column is turned into a model
// input. Numeric columns pass through (missing values take Impute);
// categorical columns map each category seen during training to the
// mean target of its rows, with Fallback covering unseen categories.
type ColumnSpec struct {
	Name     string             `json:"name"`
	Role     domain.ColumnRole  `json:"role"`
	Levels   map[string]float64 `json:"levels,omitempty"`
	Fallback float64            `json:"fallback,omitempty"`
	Impute   float64            `json:"impute,omitempty"`
}

// Metrics are held-out evaluation results recorded at training time.
type Metrics struct {
	R2   float64 `json:"r2_score"`
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
}

// Model is the frozen inference artifact: the linear coefficients fitted
// by the regression library plus the preprocessing needed to turn a raw
// feature row into the model's input space. It is read-only after
// loading and safe for concurrent Predict calls.
type Model struct {
	TargetColumn string       `json:"target_column"`
	Columns      []ColumnSpec `json:"columns"`
	Intercept    float64      `json:"intercept"`
	Coefficients []float64    `json:"coefficients"`
	Metrics      Metrics      `json:"metrics"`
	TrainedAt    time.Time    `json:"trained_at"`
}

// FeatureColumns returns the canonical columns in the order the model's
// coefficient vector expects.
func (m *Model) FeatureColumns() []string {
	names := make([]string, len(m.Columns))
	for i, col := range m.Columns {
		names[i] = col.Name
	}
	return names
}

// Predict computes the point prediction for a complete feature vector.
func (m *Model) Predict(row domain.FeatureVector) (float64, error) {
	sum := m.Intercept
	for i, col := range m.Columns {
		value, ok := row[col.Name]
		if !ok {
			return 0, fmt.Errorf("%w: feature row missing column %q", domain.ErrInference, col.Name)
		}
		x, err := m.encode(col, value)
		if err != nil {
			return 0, err
		}
		sum += m.Coefficients[i] * x
	}
	return sum, nil
}

func (m *Model) encode(col ColumnSpec, value domain.FeatureValue) (float64, error) {
	switch col.Role {
	case domain.RoleNumeric:
		if value.Role != domain.RoleNumeric {
			return 0, fmt.Errorf("%w: column %q expects a numeric value", domain.ErrInference, col.Name)
		}
		return value.Number, nil
	case domain.RoleCategorical:
		if value.Role != domain.RoleCategorical {
			return 0, fmt.Errorf("%w: column %q expects a categorical value", domain.ErrInference, col.Name)
		}
		if level, ok := col.Levels[value.Text]; ok {
			return level, nil
		}
		return col.Fallback, nil
	}
	return 0, fmt.Errorf("%w: column %q has unknown role %q", domain.ErrInference, col.Name, col.Role)
}
