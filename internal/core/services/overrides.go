package services

import (
	"fmt"
	"strings"

	"property-price-service/internal/core/domain"
)

// ParseFeaturePairs turns repeatable COLUMN=VALUE entries into overrides
// tagged with the given source. A pair without '=' or with an empty key
// is rejected before it ever reaches the resolver.
func ParseFeaturePairs(pairs []string, source domain.OverrideSource) ([]domain.Override, error) {
	overrides := make([]domain.Override, 0, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedFeaturePair, pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedFeaturePair, pair)
		}
		overrides = append(overrides, domain.Override{
			Key:    key,
			Value:  strings.TrimSpace(value),
			Source: source,
		})
	}
	return overrides, nil
}
