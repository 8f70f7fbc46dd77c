package api

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"forget-bot/internal/handler/httperr"
	"forget-bot/internal/handler/interaction"
	"forget-bot/internal/handler/middleware"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

const maxInteractionBody = 1 << 20

var ErrInvalidSignature = errs.New("invalid interaction signature")

type InteractionHandler struct {
	dispatcher *interaction.Dispatcher
	publicKey  ed25519.PublicKey
	logger     *slog.Logger
}

// NewInteractionHandler verifies requests with the public key of the
// configured environment. Without a usable key every request is refused.
func NewInteractionHandler(dispatcher *interaction.Dispatcher, cfg config.Config, logger *slog.Logger) *InteractionHandler {
	h := &InteractionHandler{dispatcher: dispatcher, logger: logger}
	creds, _ := cfg.Discord.CredentialsFor(cfg.Discord.Environment)
	key, err := hex.DecodeString(creds.PublicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		logger.Warn("discord public key missing or malformed; interactions will be rejected",
			"environment", cfg.Discord.Environment)
		return h
	}
	h.publicKey = ed25519.PublicKey(key)
	return h
}

// @Summary Discord interaction webhook
// @Description Receives signed interaction payloads and replies with an interaction response
// @Tags interactions
// @Accept json
// @Produce json
// @Param X-Signature-Ed25519 header string true "Request signature"
// @Param X-Signature-Timestamp header string true "Signature timestamp"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /discord/interactions [post]
func (h *InteractionHandler) Handle(c *gin.Context) {
	if h.publicKey == nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrInvalidSignature, "Invalid signature", nil)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInteractionBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid interaction payload", nil)
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if !discordgo.VerifyInteraction(c.Request, h.publicKey) {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrInvalidSignature, "Invalid signature", nil)
		return
	}

	var raw discordgo.Interaction
	if err := json.Unmarshal(body, &raw); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid interaction payload", nil)
		return
	}
	inv, err := interaction.FromDiscord(&raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid interaction payload", nil)
		return
	}

	if inv.UserID != "" {
		c.Set(middleware.CtxInteractionUserKey, inv.UserID)
	}
	c.JSON(http.StatusOK, h.dispatcher.Dispatch(c.Request.Context(), inv))
}
