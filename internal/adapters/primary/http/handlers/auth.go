package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"property-price-service/internal/adapters/primary/http/dto"
	"property-price-service/internal/core/services"
)

func (h *Handler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	// A missing or malformed body falls through to the service's
	// missing-credentials check.
	_ = c.ShouldBindJSON(&req)

	result, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthResponse(result, ""))
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result, "login successful"))
}

func toAuthResponse(result *services.AuthResult, message string) dto.AuthResponse {
	return dto.AuthResponse{
		Message: message,
		User: dto.UserResponse{
			ID:        result.User.ID,
			Username:  result.User.Username,
			CreatedAt: result.User.CreatedAt.Format(time.RFC3339),
		},
		Token:     result.Token,
		TokenType: result.TokenType,
		ExpiresIn: result.ExpiresIn,
	}
}
