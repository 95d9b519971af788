package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errOtaStatus = "failed to load update status"
	errOtaCheck  = "failed to check for updates"
	errOtaUpdate = "failed to start update"
)

// @Summary      Firmware update status
// @Description  Falls back to the last pushed status when the device does not answer.
// @Tags         ota
// @Produce      json
// @Success      200  {object}  models.OtaStatus
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/ota/status [get]
// @Security     BearerAuth
func (h *Handler) otaStatus(c *gin.Context) {
	st, err := h.services.Ota.Status(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errOtaStatus, "ota_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Check for a firmware update
// @Tags         ota
// @Produce      json
// @Success      200  {object}  models.OtaStatus
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/ota/check [post]
// @Security     BearerAuth
func (h *Handler) otaCheck(c *gin.Context) {
	st, err := h.services.Ota.Check(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errOtaCheck, "ota_check_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Start a firmware update
// @Description  Only allowed when an update is available and none is running. A device-side failure is reported in the "error" field of the returned status.
// @Tags         ota
// @Produce      json
// @Success      200  {object}  models.OtaStatus
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/ota/update [post]
// @Security     BearerAuth
func (h *Handler) otaUpdate(c *gin.Context) {
	st, err := h.services.Ota.StartUpdate(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errOtaUpdate, "ota_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
