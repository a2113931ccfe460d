package services

import (
	"fmt"
	"strconv"
	"strings"

	"property-price-service/internal/core/domain"
)

// FeatureResolver merges raw overrides against a DatasetProfile into a
// complete typed feature row. It holds no mutable state; one resolver
// serves any number of concurrent requests.
type FeatureResolver struct {
	profile *domain.DatasetProfile
}

func NewFeatureResolver(profile *domain.DatasetProfile) *FeatureResolver {
	return &FeatureResolver{profile: profile}
}

// Resolve applies the overrides in order. Each key is trimmed,
// case-folded and resolved through the alias table; values are coerced
// by column role. When several overrides target the same column, a
// higher-precedence source wins, and within equal precedence the
// later entry wins.
func (r *FeatureResolver) Resolve(overrides []domain.Override) (*domain.ResolvedRequest, error) {
	type winner struct {
		value domain.FeatureValue
		rank  int
	}
	winners := make(map[string]winner, len(overrides))
	consumed := make([]domain.Override, 0, len(overrides))

	for _, ov := range overrides {
		key := strings.ToLower(strings.TrimSpace(ov.Key))
		name, ok := r.profile.Resolve(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownColumn, ov.Key)
		}
		col, _ := r.profile.Column(name)

		value, err := coerce(col, ov.Value)
		if err != nil {
			return nil, err
		}

		rank := ov.Source.Rank()
		if cur, ok := winners[name]; !ok || rank >= cur.rank {
			winners[name] = winner{value: value, rank: rank}
		}
		consumed = append(consumed, ov)
	}

	features := r.profile.Defaults()
	applied := make(domain.FeatureVector, len(winners))
	for name, w := range winners {
		features[name] = w.value
		applied[name] = w.value
	}

	return &domain.ResolvedRequest{
		Features: features,
		Applied:  applied,
		Consumed: consumed,
	}, nil
}

func coerce(col domain.Column, raw string) (domain.FeatureValue, error) {
	if col.Role == domain.RoleNumeric {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return domain.FeatureValue{}, fmt.Errorf("%w: column %q, value %q", domain.ErrInvalidValue, col.Name, raw)
		}
		return domain.Numeric(f), nil
	}
	// Categorical columns accept any string; unseen categories are the
	// artifact's concern.
	return domain.Categorical(raw), nil
}
