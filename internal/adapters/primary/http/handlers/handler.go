package handlers

import (
	"property-price-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	predictionSvc *services.PredictionService
	authSvc       *services.AuthService
}

func New(predictionSvc *services.PredictionService, authSvc *services.AuthService) *Handler {
	return &Handler{
		predictionSvc: predictionSvc,
		authSvc:       authSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Prediction
	r.GET("/health", h.Health)
	r.GET("/resolve", h.Resolve)
	r.GET("/predict", h.Predict)

	// Auth
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}
