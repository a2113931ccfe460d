package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"property-price-service/internal/core/domain"
	ports "property-price-service/internal/core/ports/output"
)

// ProfileBuilder derives a DatasetProfile from the reference dataset:
// one pass over the table classifies every non-target column and
// computes its default value.
//
// Classification: a column is numeric when it has at least one
// non-empty cell and every non-empty cell parses as a float64;
// otherwise it is categorical. Empty cells are missing values and are
// excluded from the statistics.
//
// Defaults: numeric columns take the median (even count: mean of the
// two middle values); categorical columns take the most frequent value,
// with count ties broken by smallest value in byte order.
type ProfileBuilder struct {
	reader ports.DatasetReader
}

func NewProfileBuilder(reader ports.DatasetReader) *ProfileBuilder {
	return &ProfileBuilder{reader: reader}
}

func (b *ProfileBuilder) Build(ctx context.Context, dataPath, target string, bindings []domain.AliasBinding) (*domain.DatasetProfile, error) {
	table, err := b.reader.ReadTable(ctx, dataPath)
	if err != nil {
		return nil, err
	}
	return BuildProfile(table, target, bindings)
}

// BuildProfile builds a profile from an already-loaded table. Exposed
// separately so the trainer can reuse the classification on the same
// parse of the dataset.
func BuildProfile(table *domain.Table, target string, bindings []domain.AliasBinding) (*domain.DatasetProfile, error) {
	targetIdx := table.ColumnIndex(target)
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: target column %q not found in dataset", domain.ErrSchema, target)
	}

	rows := dropMissing(table.Rows, targetIdx)

	columns := make([]domain.Column, 0, len(table.Header)-1)
	for i, name := range table.Header {
		if i == targetIdx {
			continue
		}
		values := columnValues(rows, i)
		if numbers, ok := asNumeric(values); ok {
			columns = append(columns, domain.Column{
				Name:    name,
				Role:    domain.RoleNumeric,
				Default: domain.Numeric(median(numbers)),
			})
			continue
		}
		columns = append(columns, domain.Column{
			Name:    name,
			Role:    domain.RoleCategorical,
			Default: domain.Categorical(mode(values)),
		})
	}

	return domain.NewDatasetProfile(target, columns, bindings), nil
}

// dropMissing filters out rows whose target cell is empty, mirroring
// how the training process discards unlabeled rows.
func dropMissing(rows [][]string, targetIdx int) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if targetIdx < len(row) && row[targetIdx] != "" {
			kept = append(kept, row)
		}
	}
	return kept
}

func columnValues(rows [][]string, idx int) []string {
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) && row[idx] != "" {
			values = append(values, row[idx])
		}
	}
	return values
}

// asNumeric parses every value as float64; one failure, or an empty
// column, makes the column categorical.
func asNumeric(values []string) ([]float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	numbers := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		numbers = append(numbers, f)
	}
	return numbers, true
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

// mode returns the most frequent value; ties go to the smallest value
// in byte order so the default is reproducible across runs.
func mode(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := ""
	bestCount := -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}
