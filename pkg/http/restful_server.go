package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"wardmap.xyz/ward-track-service/pkg/guard"
)

type RestfulServer struct {
	Server           *gin.Engine
	Guard            *guard.Guard
	RateLimiterStore *guard.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

// ResolveCallerIdentity reads the caller's guardian id from the
// X-Guardian-Id header. This is the only identity resolution path.
func ResolveCallerIdentity(c *gin.Context) (int64, error) {
	raw := c.GetHeader("X-Guardian-Id")
	if raw == "" {
		return 0, fmt.Errorf("missing X-Guardian-Id header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid X-Guardian-Id header: %v", err)
	}
	return id, nil
}

// parseUintParam reads a positive integer path param, writing the 400
// itself on failure.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %s", name, raw)})
		return 0, false
	}
	return uint(id), true
}

// writeError maps domain error categories onto status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guard.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, guard.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, guard.ErrStateConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	devices := rs.Server.Group("/devices/:device_id")
	{
		devices.POST("/location", rs.PostLocation)
		devices.GET("/location/latest", rs.GetLatestLocation)
		devices.GET("/location/history", rs.GetLocationHistory)
		devices.POST("/limiter", rs.PostLimiter)
	}

	fences := rs.Server.Group("/fences")
	{
		fences.POST("", rs.PostFence)
		fences.GET("", rs.GetFences)
		fences.PUT("/:id", rs.PutFence)
		fences.DELETE("/:id", rs.DeleteFence)
	}

	alerts := rs.Server.Group("/alerts")
	{
		alerts.GET("", rs.GetAlerts)
		alerts.POST("/updateStatus", rs.PostAlertStatus)
		alerts.POST("/delete", rs.PostAlertDelete)
	}

	applications := rs.Server.Group("/applications")
	{
		applications.POST("/submit", rs.PostApplicationSubmit)
		applications.POST("/confirm", rs.PostApplicationConfirm)
	}

	rs.Server.GET("/notifications", rs.GetNotifications)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
