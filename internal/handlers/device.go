package handlers

import (
	"errors"
	"net/http"

	"pc_restarter/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK         = "ok"
	statusSent       = "sent"
	statusHolding    = "holding"
	statusReleased   = "released"
	statusCancelled  = "cancelled"
	statusConfigSent = "config_sent"

	errRecordAction    = "failed to record action"
	errGetState        = "failed to load state"
	errDevice          = "device request failed"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if h.services.Monitoring != nil {
		if st, err := h.services.Monitoring.GetState(ctx); err == nil {
			resp["state"] = st
		}
	}
	c.JSON(http.StatusOK, resp)
}

// serviceErrorCode maps known service errors to HTTP codes. Anything else
// came from the device round trip.
func serviceErrorCode(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptySSID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoCSRFToken), errors.Is(err, service.ErrUpdateUnavailable):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// respondServiceError writes err with the mapped code. Client errors echo
// the message; device failures use userMsg.
func (h *Handler) respondServiceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	code := serviceErrorCode(err)
	if code == http.StatusBadGateway {
		h.logAndJSONError(c, code, userMsg, logKey, err, kv...)
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	resp := gin.H{"status": statusOK}
	if h.services.Tracker != nil {
		resp["device"] = string(h.services.Tracker.Connection())
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get device status
// @Description  Merged status as last pushed by the device. Falls back to the stored snapshot.
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.StatusModel
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/device/status [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "device_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Power pulse
// @Description  Fires the power relay once, without a hold gesture. Device failures are logged, not returned; 500 means the action could not be recorded.
// @Tags         device
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/device/power [post]
// @Security     BearerAuth
func (h *Handler) power(c *gin.Context) {
	if err := h.services.Controller.Power(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRecordAction, "action_record_failed", err, "action", service.ActionPower)
		return
	}
	h.respondWithStatusAndState(c, statusSent, gin.H{"action": service.ActionPower})
}

// @Summary      Reset pulse
// @Tags         device
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/device/reset [post]
// @Security     BearerAuth
func (h *Handler) reset(c *gin.Context) {
	if err := h.services.Controller.Reset(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRecordAction, "action_record_failed", err, "action", service.ActionReset)
		return
	}
	h.respondWithStatusAndState(c, statusSent, gin.H{"action": service.ActionReset})
}

// @Summary      Start holding a button
// @Description  Progress is streamed over /ws as "hold" frames. The action fires once the hold completes.
// @Tags         device
// @Produce      json
// @Param        action  path  string  true  "Button"  Enums(power,reset)
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/device/hold/{action}/press [post]
// @Security     BearerAuth
func (h *Handler) holdPress(c *gin.Context) {
	h.holdStep(c, statusHolding, "hold_press_failed", h.services.Hold.Press)
}

// @Summary      Release a held button
// @Description  Fires the action if the hold lasted long enough, otherwise aborts.
// @Tags         device
// @Produce      json
// @Param        action  path  string  true  "Button"  Enums(power,reset)
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/device/hold/{action}/release [post]
// @Security     BearerAuth
func (h *Handler) holdRelease(c *gin.Context) {
	h.holdStep(c, statusReleased, "hold_release_failed", h.services.Hold.Release)
}

// @Summary      Cancel a held button
// @Description  Pointer left the button or the page lost focus. Never fires the action.
// @Tags         device
// @Produce      json
// @Param        action  path  string  true  "Button"  Enums(power,reset)
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/device/hold/{action}/cancel [post]
// @Security     BearerAuth
func (h *Handler) holdCancel(c *gin.Context) {
	h.holdStep(c, statusCancelled, "hold_cancel_failed", h.services.Hold.Cancel)
}

func (h *Handler) holdStep(c *gin.Context, status, logKey string, step func(action string) error) {
	action := c.Param("action")
	if err := step(action); err != nil {
		h.respondServiceError(c, errDevice, logKey, err, "action", action)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "action": action})
}
