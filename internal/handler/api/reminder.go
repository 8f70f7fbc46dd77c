package api

import (
	"net/http"

	reqdto "forget-bot/internal/handler/dto/request"
	resdto "forget-bot/internal/handler/dto/response"
	"forget-bot/internal/handler/httperr"
	"forget-bot/internal/handler/interaction"
	"forget-bot/internal/handler/middleware"
	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/usecase/commands"
	"forget-bot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthorized     = errs.New("unauthorized")
	ErrForbidden        = errs.New("forbidden")
	ErrReminderNotFound = errs.New("reminder not found")
	ErrReminderFinished = errs.New("reminder already sent or cancelled")
)

type ReminderHandler struct {
	cmds   commands.ReminderCommands
	q      queries.ReminderQueries
	policy interaction.AccessPolicy
	env    config.Environment
}

func NewReminderHandler(cmds commands.ReminderCommands, q queries.ReminderQueries, policy interaction.AccessPolicy, cfg config.Config) *ReminderHandler {
	return &ReminderHandler{cmds: cmds, q: q, policy: policy, env: cfg.Discord.Environment}
}

// @Summary Create reminder
// @Description Schedule a direct-message reminder for the authenticated user
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReminderRequest true "Create reminder request"
// @Success 201 {object} resdto.ReminderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	userID, ok := h.authorize(c)
	if !ok {
		return
	}
	var req reqdto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	scheduled, err := h.cmds.Schedule(c.Request.Context(), req.ToCommand(userID, h.env))
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrUnparseableTime), errs.Is(err, commands.ErrEmptyTime):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Could not parse time", gin.H{"time": req.Time})
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reminder", errs.Cause(err).Error())
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to schedule reminder", nil)
		}
		return
	}

	res, err := resdto.FromScheduledReminder(scheduled)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render reminder", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List reminders
// @Description List the authenticated user's active reminders, soonest first
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReminderListResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	userID, ok := h.authorize(c)
	if !ok {
		return
	}
	list, err := h.q.List(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reminders", nil)
		return
	}
	res, err := resdto.FromReminderList(list)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render reminders", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel reminder
// @Description Cancel one of the authenticated user's pending reminders
// @Tags reminders
// @Security BearerAuth
// @Param runId path string true "Reminder run ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reminders/{runId} [delete]
func (h *ReminderHandler) Cancel(c *gin.Context) {
	userID, ok := h.authorize(c)
	if !ok {
		return
	}
	runID := c.Param("runId")
	outcome, err := h.cmds.Cancel(c.Request.Context(), commands.CancelRequest{RunID: runID, RequesterID: userID})
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel reminder", nil)
		return
	}

	switch outcome {
	case commands.CancelOK:
		c.Status(http.StatusNoContent)
	case commands.CancelDenied:
		httperr.AbortWithError(c, http.StatusForbidden, ErrForbidden, "You can only cancel your own reminders", nil)
	case commands.CancelNotFound:
		httperr.AbortWithError(c, http.StatusNotFound, errs.Wrapf(ErrReminderNotFound, "run %s", runID), "Reminder not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusConflict, errs.Wrapf(ErrReminderFinished, "run %s", runID), "Reminder already sent or cancelled", nil)
	}
}

func (h *ReminderHandler) authorize(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, ErrUnauthorized, "Unauthorized", nil)
		return "", false
	}
	if h.policy != nil && !h.policy.Allowed(userID) {
		httperr.AbortWithError(c, http.StatusForbidden, ErrForbidden, "Access denied", nil)
		return "", false
	}
	return userID, true
}
