package http

import (
	"net/http"
	"time"

	"wardmap.xyz/ward-track-service/pkg/geo"
	"wardmap.xyz/ward-track-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type LocationRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Accuracy   float64 `json:"accuracy"`
	GuardianID int     `json:"guardianId"`
}

var locationRequestSchema = z.Struct(z.Shape{
	"Latitude":   z.Float64().Required(),
	"Longitude":  z.Float64().Required(),
	"Accuracy":   z.Float64(),
	"GuardianID": z.Int().Required(),
})

func (rs *RestfulServer) PostLocation(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req LocationRequest
	if err := locationRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	projection, err := rs.Guard.Location.Report(deviceID, &models.LocationReport{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Accuracy:   req.Accuracy,
		GuardianID: int64(req.GuardianID),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection)
}

func (rs *RestfulServer) GetLatestLocation(c *gin.Context) {
	deviceID := c.Param("device_id")

	guardianID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	projection, err := rs.Guard.Location.LatestLocation(deviceID, guardianID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, projection)
}

func (rs *RestfulServer) GetLocationHistory(c *gin.Context) {
	deviceID := c.Param("device_id")

	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be RFC3339"})
			return
		}
		start = &parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be RFC3339"})
			return
		}
		end = &parsed
	}

	samples, err := rs.Guard.Location.History(deviceID, start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, samples)
}

type FenceRequest struct {
	DeviceID string      `json:"deviceId"`
	Name     string      `json:"name"`
	Vertices [][]float64 `json:"vertices"`
}

var fenceRequestSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Required(),
	"Name":     z.String().Required(),
	"Vertices": z.Slice(z.Slice(z.Float64())).Required(),
})

var fenceUpdateSchema = z.Struct(z.Shape{
	"DeviceID": z.String(),
	"Name":     z.String(),
	"Vertices": z.Slice(z.Slice(z.Float64())),
})

func parseVertices(raw [][]float64) ([]geo.Point, bool) {
	points := make([]geo.Point, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			return nil, false
		}
		points = append(points, geo.Point{Lon: pair[0], Lat: pair[1]})
	}
	return points, true
}

func (rs *RestfulServer) PostFence(c *gin.Context) {
	ownerID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req FenceRequest
	if err := fenceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	vertices, ok := parseVertices(req.Vertices)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vertices must be [lon,lat] pairs"})
		return
	}

	fence, err := rs.Guard.Fence.CreateFence(ownerID, &models.FenceInput{
		DeviceID: req.DeviceID,
		Name:     req.Name,
		Vertices: vertices,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fence)
}

func (rs *RestfulServer) GetFences(c *gin.Context) {
	ownerID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	deviceID := c.Query("deviceId")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceId is required"})
		return
	}

	fences, err := rs.Guard.Fence.ListFences(deviceID, ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fences)
}

func (rs *RestfulServer) PutFence(c *gin.Context) {
	ownerID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fenceID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req FenceRequest
	if err := fenceUpdateSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	input := models.FenceInput{Name: req.Name}
	if req.Vertices != nil {
		vertices, ok := parseVertices(req.Vertices)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vertices must be [lon,lat] pairs"})
			return
		}
		input.Vertices = vertices
	}

	if err := rs.Guard.Fence.UpdateFence(fenceID, ownerID, &input); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) DeleteFence(c *gin.Context) {
	ownerID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fenceID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := rs.Guard.Fence.DeleteFence(fenceID, ownerID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	filter := models.AlertFilter{
		DeviceID: c.Query("deviceId"),
		Type:     models.AlertType(c.Query("type")),
		Status:   models.AlertStatus(c.Query("status")),
	}

	alerts, err := rs.Guard.Alert.ListAlerts(filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type AlertBatchRequest struct {
	IDs    []int  `json:"ids"`
	Status string `json:"status"`
}

var alertStatusRequestSchema = z.Struct(z.Shape{
	"IDs":    z.Slice(z.Int()).Required(),
	"Status": z.String().Required(),
})

var alertDeleteRequestSchema = z.Struct(z.Shape{
	"IDs": z.Slice(z.Int()).Required(),
})

func toAlertIDs(raw []int) []uint {
	ids := make([]uint, 0, len(raw))
	for _, id := range raw {
		if id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

func (rs *RestfulServer) PostAlertStatus(c *gin.Context) {
	var req AlertBatchRequest
	if err := alertStatusRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Guard.Alert.UpdateAlertStatus(toAlertIDs(req.IDs), models.AlertStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) PostAlertDelete(c *gin.Context) {
	var req AlertBatchRequest
	if err := alertDeleteRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Guard.Alert.UpdateAlertStatus(toAlertIDs(req.IDs), models.AlertStatusDeleted)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type ApplicationSubmitRequest struct {
	WardDeviceID string `json:"wardDeviceId"`
}

var applicationSubmitSchema = z.Struct(z.Shape{
	"WardDeviceID": z.String().Required(),
})

func (rs *RestfulServer) PostApplicationSubmit(c *gin.Context) {
	guardianID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req ApplicationSubmitRequest
	if err := applicationSubmitSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	application, err := rs.Guard.Application.SubmitApplication(guardianID, req.WardDeviceID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

type ApplicationConfirmRequest struct {
	NotificationID int  `json:"notificationId"`
	Approved       bool `json:"approved"`
}

var applicationConfirmSchema = z.Struct(z.Shape{
	"NotificationID": z.Int().Required(),
	"Approved":       z.Bool(),
})

func (rs *RestfulServer) PostApplicationConfirm(c *gin.Context) {
	var req ApplicationConfirmRequest
	if err := applicationConfirmSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Guard.Application.ConfirmApplication(uint(req.NotificationID), req.Approved); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetNotifications(c *gin.Context) {
	userID, err := ResolveCallerIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	notifications, err := rs.Guard.Notify.ListNotifications(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
