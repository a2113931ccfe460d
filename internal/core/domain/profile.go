package domain

import "strings"

// ColumnRole tells the resolver how to coerce raw override values for a
// column and which default statistic the profile builder computed for it.
type ColumnRole string

const (
	RoleNumeric     ColumnRole = "numeric"
	RoleCategorical ColumnRole = "categorical"
)

// Column describes one feature column of the reference dataset.
type Column struct {
	Name    string
	Role    ColumnRole
	Default FeatureValue
}

// DatasetProfile holds the feature schema derived from the reference
// dataset: the ordered non-target columns, their dataset-derived defaults
// and the alias table. It is built once at startup and never mutated, so
// concurrent readers need no synchronization.
type DatasetProfile struct {
	TargetColumn string
	Columns      []Column

	// aliases maps lower-cased alias and canonical names to the
	// canonical column name.
	aliases map[string]string
	// index maps canonical names to their position in Columns.
	index map[string]int
}

// NewDatasetProfile assembles an immutable profile. Every column gets an
// identity alias for its lower-cased canonical name; the extra bindings
// add the human-facing names. Bindings referring to columns absent from
// the schema are ignored, so one fixed alias list can serve datasets
// that carry only a subset of the known columns.
func NewDatasetProfile(target string, columns []Column, bindings []AliasBinding) *DatasetProfile {
	p := &DatasetProfile{
		TargetColumn: target,
		Columns:      columns,
		aliases:      make(map[string]string, len(columns)+len(bindings)),
		index:        make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		p.index[col.Name] = i
		p.aliases[strings.ToLower(col.Name)] = col.Name
	}
	for _, b := range bindings {
		if _, ok := p.index[b.Column]; ok {
			p.aliases[strings.ToLower(b.Alias)] = b.Column
		}
	}
	return p
}

// Resolve maps a normalized (lower-cased, trimmed) key to the canonical
// column name.
func (p *DatasetProfile) Resolve(key string) (string, bool) {
	name, ok := p.aliases[key]
	return name, ok
}

// Column returns the column definition for a canonical name.
func (p *DatasetProfile) Column(name string) (Column, bool) {
	i, ok := p.index[name]
	if !ok {
		return Column{}, false
	}
	return p.Columns[i], true
}

// ColumnNames returns the canonical feature column names in profile order.
func (p *DatasetProfile) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, col := range p.Columns {
		names[i] = col.Name
	}
	return names
}

// Defaults returns the complete default feature vector.
func (p *DatasetProfile) Defaults() FeatureVector {
	vec := make(FeatureVector, len(p.Columns))
	for _, col := range p.Columns {
		vec[col.Name] = col.Default
	}
	return vec
}

// Aliases returns a copy of the alias table, lower-cased alias to
// canonical column name.
func (p *DatasetProfile) Aliases() map[string]string {
	out := make(map[string]string, len(p.aliases))
	for alias, name := range p.aliases {
		out[alias] = name
	}
	return out
}
