package handlers

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"property-price-service/internal/adapters/primary/http/dto"
	"property-price-service/internal/core/domain"
	"property-price-service/internal/core/services"
)

func (h *Handler) Health(c *gin.Context) {
	profile, err := h.predictionSvc.Profile(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       "ok",
		ModelPath:    h.predictionSvc.ModelPath(),
		DataPath:     h.predictionSvc.DataPath(),
		Target:       h.predictionSvc.Target(),
		FeatureCount: len(profile.Columns),
	})
}

func (h *Handler) Predict(c *gin.Context) {
	overrides, err := collectOverrides(c.Request.URL.RawQuery)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	result, err := h.predictionSvc.Predict(c.Request.Context(), overrides)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PredictionResponse{
		Prediction: math.Round(result.Value*100) / 100,
		Currency:   result.Currency,
		Features:   result.Features.Raw(),
		Overrides:  result.Applied.Raw(),
	})
}

// Resolve returns the fully resolved feature row without running inference.
func (h *Handler) Resolve(c *gin.Context) {
	overrides, err := collectOverrides(c.Request.URL.RawQuery)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	resolved, err := h.predictionSvc.Resolve(c.Request.Context(), overrides)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResolveResponse{
		Features:  resolved.Features.Raw(),
		Overrides: resolved.Applied.Raw(),
	})
}

// collectOverrides maps query parameters to overrides, walking the raw
// query string so that the wire order of repeated parameters is kept.
// Named parameters become query-source overrides resolved through the
// alias table; each repeated feature=Column=Value entry becomes one
// generic override.
func collectOverrides(rawQuery string) ([]domain.Override, error) {
	var overrides []domain.Override
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedFeaturePair, part)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrMalformedFeaturePair, part)
		}

		if key == "feature" {
			generic, err := services.ParseFeaturePairs([]string{value}, domain.SourceGeneric)
			if err != nil {
				return nil, err
			}
			overrides = append(overrides, generic...)
			continue
		}
		overrides = append(overrides, domain.Override{
			Key:    key,
			Value:  value,
			Source: domain.SourceQuery,
		})
	}
	return overrides, nil
}
