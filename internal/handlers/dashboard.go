package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK             = "ok"
	statusFeeding        = "feeding"
	statusFed            = "fed"
	statusAlreadyFeeding = "already_feeding"
	statusDismissed      = "dismissed"

	errGetState     = "failed to load dashboard"
	errFeedAborted  = "feed finished without a record"
	errInvalidQuery = "invalid query parameter: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// queryBool parses an optional boolean query parameter; missing means false.
func queryBool(c *gin.Context, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard snapshot
// @Description  Current readings with status, reading and feeding history, alerts and the feeding flag
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.DashboardSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "dashboard_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Reading history
// @Description  Up to 24 readings, oldest first
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "dashboard_get_readings_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(st.ReadingHistory),
		"readings": st.ReadingHistory,
	})
}

// @Summary      Feeding history
// @Description  Up to 10 feedings, newest first
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, feedings, feeding, success_rate"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard/feedings [get]
// @Security     BearerAuth
func (h *Handler) getFeedings(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "dashboard_get_feedings_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(st.FeedingHistory),
		"feedings":     st.FeedingHistory,
		"success_rate": st.SuccessRate,
		"feeding":      st.Feeding,
	})
}

// @Summary      Feed the fish
// @Description  Starts a manual feeding. Returns 202 immediately, or with wait=true 200 with the record once the feeder settles. A request made while a feed is running is answered with already_feeding.
// @Tags         feeder
// @Produce      json
// @Param        wait  query   bool  false  "Block until the feeding completes"
// @Success      200   {object}  map[string]interface{}  "status, record"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/feed [post]
// @Security     BearerAuth
func (h *Handler) feed(c *gin.Context) {
	wait, err := queryBool(c, "wait")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidQuery + "wait"})
		return
	}

	ctx := c.Request.Context()
	done, ok := h.services.Feeder.Feed(ctx)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": statusAlreadyFeeding})
		return
	}
	if !wait {
		c.JSON(http.StatusAccepted, gin.H{"status": statusFeeding})
		return
	}

	select {
	case rec, open := <-done:
		if !open {
			h.logAndJSONError(c, http.StatusInternalServerError, errFeedAborted, "feed_no_record", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": statusFed, "record": rec})
	case <-ctx.Done():
		// client went away; the feed still completes in the background
		if h.log != nil {
			h.log.Infow("feed_wait_abandoned", "err", ctx.Err())
		}
	}
}
