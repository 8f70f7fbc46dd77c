//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"forget-bot/internal/handler/api"
	"forget-bot/internal/handler/interaction"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase/commands"
	"forget-bot/tests/common/authtest"
	"forget-bot/tests/common/httptest"
	commandsmock "forget-bot/tests/mock/commands"
	queriesmock "forget-bot/tests/mock/queries"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	interactionsPath = "/discord/interactions"
	interactionID    = "175928847299117063"
)

type InteractionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReminderCommands
	signer       *authtest.InteractionSigner
}

func (s *InteractionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReminderCommands(s.mockCtrl)
	s.signer = authtest.NewInteractionSigner(s.T())

	cfg := config.NewTestConfig()
	cfg.Discord.PublicKeyDev = s.signer.PublicKeyHex()
	s.router = s.newRouter(cfg)
}

func (s *InteractionHandlerTestSuite) newRouter(cfg config.Config) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := interaction.NewDispatcher(
		s.mockCommands, queriesmock.NewMockReminderQueries(s.mockCtrl),
		interaction.NewAllowList(cfg), cfg, logger, nil,
	)
	router := gin.New()
	router.POST(interactionsPath, api.NewInteractionHandler(dispatcher, cfg, logger).Handle)
	return router
}

func (s *InteractionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInteractionHandlerSuite(t *testing.T) {
	suite.Run(t, new(InteractionHandlerTestSuite))
}

// components are interfaces in discordgo and cannot be decoded back
type renderedResponse struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data struct {
		Content string `json:"content"`
		Flags   int    `json:"flags"`
	} `json:"data"`
}

func (s *InteractionHandlerTestSuite) decode(body []byte) renderedResponse {
	var resp renderedResponse
	s.Require().NoError(json.Unmarshal(body, &resp))
	return resp
}

func (s *InteractionHandlerTestSuite) TestPingHandshake() {
	req := s.signer.NewRequest(s.T(), interactionsPath, map[string]any{"id": interactionID, "type": 1})

	w := httptest.Serve(s.router, req)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	httptest.AssertHeaders(s.T(), w, map[string]string{"Content-Type": "application/json; charset=utf-8"})
	s.Equal(discordgo.InteractionResponsePong, s.decode(w.Body.Bytes()).Type)
}

func (s *InteractionHandlerTestSuite) TestSlashCommand() {
	runID := uuid.New()
	s.mockCommands.EXPECT().Schedule(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req commands.ScheduleRequest) (*commands.ScheduledReminder, error) {
			s.Equal("333", req.UserID)
			s.Equal("5 minutes", req.Time)
			return &commands.ScheduledReminder{RunID: runID, Message: req.Message, Ephemeral: true, RelativeTime: "Today at 11:05 AM"}, nil
		})

	req := s.signer.NewRequest(s.T(), interactionsPath, map[string]any{
		"id":     interactionID,
		"type":   2,
		"member": map[string]any{"user": map[string]any{"id": "333"}},
		"data": map[string]any{
			"name": "remind-me",
			"type": 1,
			"options": []map[string]any{
				{"name": "time", "type": 3, "value": "5 minutes"},
				{"name": "message", "type": 3, "value": "stretch"},
			},
		},
	})

	w := httptest.Serve(s.router, req)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	resp := s.decode(w.Body.Bytes())
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	s.Contains(resp.Data.Content, `"stretch" Today at 11:05 AM`)
}

func (s *InteractionHandlerTestSuite) TestRejectsBadSignature() {
	other := authtest.NewInteractionSigner(s.T())
	req := other.NewRequest(s.T(), interactionsPath, map[string]any{"id": interactionID, "type": 1})

	w := httptest.Serve(s.router, req)

	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid signature")
}

func (s *InteractionHandlerTestSuite) TestRejectsWithoutConfiguredKey() {
	router := s.newRouter(config.NewTestConfig())
	req := s.signer.NewRequest(s.T(), interactionsPath, map[string]any{"id": interactionID, "type": 1})

	w := httptest.Serve(router, req)

	httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid signature")
}

func (s *InteractionHandlerTestSuite) TestRejectsMalformedInvocation() {
	req := s.signer.NewRequest(s.T(), interactionsPath, map[string]any{
		"id":   interactionID,
		"type": 2,
		"data": map[string]any{"name": "remind-me", "type": 1},
	})

	w := httptest.Serve(s.router, req)

	httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid interaction payload")
}
