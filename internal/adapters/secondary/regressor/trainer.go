package regressor

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sajari/regression"

	"property-price-service/internal/core/domain"
)

// TrainConfig controls the offline training run.
type TrainConfig struct {
	TargetColumn string
	TestSize     float64
	Seed         int64
}

// Trainer fits a linear model with the sajari regression library.
// Preprocessing mirrors the serving-side artifact contract: numeric
// columns are imputed with the train-split median, categorical columns
// are target-encoded on the train split.
type Trainer struct{}

func NewTrainer() *Trainer {
	return &Trainer{}
}

// Fit trains on the table and returns a frozen model carrying held-out
// metrics. Rows without a usable target are dropped, as are exact
// duplicate rows.
func (t *Trainer) Fit(table *domain.Table, cfg TrainConfig) (*Model, error) {
	targetIdx := table.ColumnIndex(cfg.TargetColumn)
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: target column %q not found in dataset", domain.ErrSchema, cfg.TargetColumn)
	}
	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		cfg.TestSize = 0.2
	}

	rows, targets := labeledRows(table.Rows, targetIdx)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows after dropping missing targets", domain.ErrDataLoad)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	rng.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
		targets[i], targets[j] = targets[j], targets[i]
	})

	nTest := int(float64(len(rows)) * cfg.TestSize)
	if nTest >= len(rows) {
		nTest = len(rows) - 1
	}
	testRows, trainRows := rows[:nTest], rows[nTest:]
	testTargets, trainTargets := targets[:nTest], targets[nTest:]

	specs := buildSpecs(table.Header, targetIdx, trainRows, trainTargets)

	r := new(regression.Regression)
	r.SetObserved(cfg.TargetColumn)
	for i, spec := range specs {
		r.SetVar(i, spec.Name)
	}
	for i, row := range trainRows {
		r.Train(regression.DataPoint(trainTargets[i], encodeRow(specs, table.Header, targetIdx, row)))
	}
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("fit regression: %w", err)
	}

	coeffs := r.GetCoeffs()
	if len(coeffs) != len(specs)+1 {
		return nil, fmt.Errorf("fit regression: got %d coefficients for %d features", len(coeffs), len(specs))
	}

	m := &Model{
		TargetColumn: cfg.TargetColumn,
		Columns:      specs,
		Intercept:    coeffs[0],
		Coefficients: coeffs[1:],
		TrainedAt:    time.Now().UTC(),
	}

	evalRows, evalTargets := testRows, testTargets
	if len(evalRows) == 0 {
		evalRows, evalTargets = trainRows, trainTargets
	}
	m.Metrics = evaluate(m, table.Header, targetIdx, evalRows, evalTargets)

	return m, nil
}

// labeledRows keeps de-duplicated rows whose target parses as a number.
func labeledRows(rows [][]string, targetIdx int) ([][]string, []float64) {
	seen := make(map[string]bool, len(rows))
	kept := make([][]string, 0, len(rows))
	targets := make([]float64, 0, len(rows))
	for _, row := range rows {
		if targetIdx >= len(row) || row[targetIdx] == "" {
			continue
		}
		y, err := strconv.ParseFloat(row[targetIdx], 64)
		if err != nil {
			continue
		}
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
		targets = append(targets, y)
	}
	return kept, targets
}

func buildSpecs(header []string, targetIdx int, rows [][]string, targets []float64) []ColumnSpec {
	prior := mean(targets)
	specs := make([]ColumnSpec, 0, len(header)-1)
	for i, name := range header {
		if i == targetIdx {
			continue
		}
		if numbers, ok := numericColumn(rows, i); ok {
			specs = append(specs, ColumnSpec{
				Name:   name,
				Role:   domain.RoleNumeric,
				Impute: median(numbers),
			})
			continue
		}
		specs = append(specs, ColumnSpec{
			Name:     name,
			Role:     domain.RoleCategorical,
			Levels:   targetEncode(rows, targets, i),
			Fallback: prior,
		})
	}
	return specs
}

func numericColumn(rows [][]string, idx int) ([]float64, bool) {
	numbers := make([]float64, 0, len(rows))
	for _, row := range rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		f, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, false
		}
		numbers = append(numbers, f)
	}
	if len(numbers) == 0 {
		return nil, false
	}
	return numbers, true
}

func targetEncode(rows [][]string, targets []float64, idx int) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, row := range rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		sums[row[idx]] += targets[i]
		counts[row[idx]]++
	}
	levels := make(map[string]float64, len(sums))
	for category, sum := range sums {
		levels[category] = sum / float64(counts[category])
	}
	return levels
}

func encodeRow(specs []ColumnSpec, header []string, targetIdx int, row []string) []float64 {
	features := make([]float64, 0, len(specs))
	col := 0
	for i := range header {
		if i == targetIdx {
			continue
		}
		spec := specs[col]
		col++

		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if spec.Role == domain.RoleNumeric {
			if f, err := strconv.ParseFloat(cell, 64); err == nil && cell != "" {
				features = append(features, f)
			} else {
				features = append(features, spec.Impute)
			}
			continue
		}
		if level, ok := spec.Levels[cell]; ok && cell != "" {
			features = append(features, level)
		} else {
			features = append(features, spec.Fallback)
		}
	}
	return features
}

func evaluate(m *Model, header []string, targetIdx int, rows [][]string, targets []float64) Metrics {
	var absErr, sqErr, ssTot float64
	yMean := mean(targets)
	for i, row := range rows {
		features := encodeRow(m.Columns, header, targetIdx, row)
		pred := m.Intercept
		for j, x := range features {
			pred += m.Coefficients[j] * x
		}
		diff := pred - targets[i]
		absErr += math.Abs(diff)
		sqErr += diff * diff
		ssTot += (targets[i] - yMean) * (targets[i] - yMean)
	}
	n := float64(len(rows))
	metrics := Metrics{
		MAE:  absErr / n,
		RMSE: math.Sqrt(sqErr / n),
	}
	if ssTot > 0 {
		metrics.R2 = 1 - sqErr/ssTot
	}
	return metrics
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
