package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List alerts
// @Description  Newest first. active=true hides dismissed alerts.
// @Tags         alerts
// @Produce      json
// @Param        active  query   bool  false  "Only undismissed alerts"
// @Success      200     {object}  map[string]interface{}  "count, alerts"
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) listAlerts(c *gin.Context) {
	activeOnly, err := queryBool(c, "active")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidQuery + "active"})
		return
	}
	alerts := h.services.Alerts.ListAlerts(c.Request.Context(), activeOnly)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// @Summary      Dismiss alert
// @Description  Unknown ids are a no-op and report dismissed=false.
// @Tags         alerts
// @Produce      json
// @Param        id   path   string  true  "Alert id"
// @Success      200  {object}  map[string]interface{}  "status, dismissed, alert"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/alerts/{id}/dismiss [post]
// @Security     BearerAuth
func (h *Handler) dismissAlert(c *gin.Context) {
	id := c.Param("id")
	a, ok := h.services.Alerts.Dismiss(c.Request.Context(), id)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": statusDismissed, "dismissed": false, "id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDismissed, "dismissed": true, "alert": a})
}
