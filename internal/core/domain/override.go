package domain

// OverrideSource tags where an override came from. Sources have a fixed
// precedence: named flags beat generic COLUMN=VALUE pairs, which beat
// plain query parameters. Within one source the last-listed entry wins.
type OverrideSource string

const (
	SourceNamed   OverrideSource = "named"
	SourceGeneric OverrideSource = "generic"
	SourceQuery   OverrideSource = "query"
)

// Rank returns the precedence of the source; higher wins.
func (s OverrideSource) Rank() int {
	switch s {
	case SourceNamed:
		return 3
	case SourceGeneric:
		return 2
	case SourceQuery:
		return 1
	}
	return 0
}

// Override is one raw caller-supplied column value, not yet resolved
// against the profile.
type Override struct {
	Key    string
	Value  string
	Source OverrideSource
}

// FeatureValue is a typed feature cell: float64 for numeric columns,
// string for categorical ones.
type FeatureValue struct {
	Role   ColumnRole
	Number float64
	Text   string
}

func Numeric(v float64) FeatureValue {
	return FeatureValue{Role: RoleNumeric, Number: v}
}

func Categorical(v string) FeatureValue {
	return FeatureValue{Role: RoleCategorical, Text: v}
}

// Raw returns the underlying value for JSON echoes and artifact input.
func (v FeatureValue) Raw() interface{} {
	if v.Role == RoleNumeric {
		return v.Number
	}
	return v.Text
}

// FeatureVector maps canonical column names to typed values. A resolved
// vector contains exactly the profile's non-target columns.
type FeatureVector map[string]FeatureValue

// Raw converts the vector to plain values keyed by column name.
func (f FeatureVector) Raw() map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for name, v := range f {
		out[name] = v.Raw()
	}
	return out
}

// ResolvedRequest is the outcome of merging overrides with defaults.
type ResolvedRequest struct {
	Features FeatureVector
	// Applied holds only the columns actually overridden, with their
	// coerced values.
	Applied FeatureVector
	// Consumed echoes the raw override entries that produced Applied.
	Consumed []Override
}

// Prediction carries the scalar output plus the inputs that produced it.
type Prediction struct {
	Value    float64
	Currency string
	Features FeatureVector
	Applied  FeatureVector
}
