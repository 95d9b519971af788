package handlers

import (
	"net/http"

	"pc_restarter/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errGetConfig  = "failed to load device config"
	errSaveConfig = "failed to save device config"
	errScanWifi   = "wifi scan failed"
)

// @Summary      Device configuration
// @Description  Secrets are never returned, only whether they are set.
// @Tags         setup
// @Produce      json
// @Success      200  {object}  models.DeviceConfig
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/setup/config [get]
// @Security     BearerAuth
func (h *Handler) getConfig(c *gin.Context) {
	cfg, err := h.services.Setup.GetConfig(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errGetConfig, "setup_get_config_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Save device configuration
// @Description  The device reboots on save, so the request is sent without waiting for an answer.
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  models.ConfigUpdate  true  "Configuration"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/setup/config [post]
// @Security     BearerAuth
func (h *Handler) saveConfig(c *gin.Context) {
	var upd models.ConfigUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Setup.SaveConfig(c.Request.Context(), upd); err != nil {
		h.respondServiceError(c, errSaveConfig, "setup_save_config_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusConfigSent})
}

// @Summary      Scan for WiFi networks
// @Description  Waits for the device to finish scanning. Networks are deduplicated by SSID and sorted by signal strength.
// @Tags         setup
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, networks"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/setup/wifi/scan [get]
// @Security     BearerAuth
func (h *Handler) scanWifi(c *gin.Context) {
	networks, err := h.services.Setup.ScanWifi(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, errScanWifi, "setup_scan_wifi_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(networks),
		"networks": networks,
	})
}
