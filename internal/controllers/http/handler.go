package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"ablefy-sync/internal/services"

	"github.com/gin-gonic/gin"
)

const secretHeader = "x-webhook-secret"

type Handler struct {
	service *services.WebhookService
	secret  string
}

func NewHandler(s *services.WebhookService, secret string) *Handler {
	return &Handler{service: s, secret: secret}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
	r.POST("/functions/v1/process-ablefy-webhook", h.ProcessWebhook)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ProcessWebhook(c *gin.Context) {
	if !h.secretMatches(c.GetHeader(secretHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	tx, err := h.service.ProcessTransaction(c.Request.Context(), req.raw())
	if err != nil {
		if errors.Is(err, services.ErrDeliveryInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process transaction", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{
		Success:       true,
		TransactionID: tx.ID,
		Message:       "transaction processed",
	})
}

func (h *Handler) secretMatches(got string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) == 1
}
