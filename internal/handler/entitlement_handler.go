package handler

import (
	"context"
	"log/slog"
	"net/http"

	"futurenews/internal/model"

	"github.com/gin-gonic/gin"
)

type EntitlementReader interface {
	TrialStatus(ctx context.Context, deviceID string) (model.TrialStatus, error)
	TokenStatus(ctx context.Context, token string) (model.TokenStatus, error)
}

type EntitlementHandler struct {
	ledger EntitlementReader
}

func NewEntitlementHandler(ledger EntitlementReader) *EntitlementHandler {
	return &EntitlementHandler{ledger: ledger}
}

func (h *EntitlementHandler) GetTrialStatus(c *gin.Context) {
	deviceID := c.Param("device_id")

	status, err := h.ledger.TrialStatus(c.Request.Context(), deviceID)
	if err != nil {
		slog.Error("error fetching trial status", "error", err, "device_id", deviceID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, TrialStatusResponse{
		HasFreeTrial:  status.HasFreeTrial,
		UsesRemaining: status.UsesRemaining,
	})
}

func (h *EntitlementHandler) GetTokenStatus(c *gin.Context) {
	token := c.Param("token")

	status, err := h.ledger.TokenStatus(c.Request.Context(), token)
	if err != nil {
		slog.Error("error fetching token status", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, TokenStatusResponse{
		Valid:                status.Valid,
		RemainingGenerations: status.RemainingGenerations,
	})
}
