package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"property-price-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Bad request / validation errors
	case errors.Is(err, domain.ErrUnknownColumn),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrMalformedFeaturePair),
		errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Auth errors
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Startup-state errors: the service never initialized, so it
	// refuses to serve rather than degrade.
	case errors.Is(err, domain.ErrDataLoad),
		errors.Is(err, domain.ErrSchema):
		log.WithError(err).Error("prediction service unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	// Server-side inference fault: the input already passed validation.
	case errors.Is(err, domain.ErrInference):
		log.WithError(err).Error("inference failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		log.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
