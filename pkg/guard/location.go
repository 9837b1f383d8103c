package guard

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
)

func validateReport(input *models.LocationReport) error {
	if input.Latitude < -90 || input.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrValidation, input.Latitude)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrValidation, input.Longitude)
	}
	if input.Accuracy < 0 {
		return fmt.Errorf("%w: accuracy %v must be >= 0", ErrValidation, input.Accuracy)
	}
	return nil
}

// reportLocation runs the ingestion pipeline: validate, persist, push
// a projection to the owning guardian, evaluate fences. The report
// succeeds once persistence succeeds; push and evaluation faults are
// logged and swallowed.
func (g *Guard) reportLocation(deviceID string, input *models.LocationReport) (*models.LocationProjection, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryLocation),
	)

	if err := validateReport(input); err != nil {
		return nil, err
	}

	sample := models.LocationSample{
		DeviceID:   deviceID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Accuracy:   input.Accuracy,
		GuardianID: input.GuardianID,
	}

	logger.Info("Received location for device", zap.Reflect("sample", sample))

	if err := g.Db.Conn.Create(&sample).Error; err != nil {
		return nil, err
	}

	projection := projectSample(&sample)

	if g.Pusher != nil {
		if payload, err := json.Marshal(projection); err != nil {
			logger.Error("Failed to serialize location projection", zap.Error(err))
		} else {
			g.Pusher.Push(input.GuardianID, payload)
		}
	}

	if g.Fence == nil {
		logger.Warn("Fence service not available, skipping evaluation",
			zap.String("device_id", deviceID))
		return projection, nil
	}

	if err := g.Fence.Evaluate(projection); err != nil {
		logger.Error("Fence evaluation failed",
			zap.String("device_id", deviceID), zap.Error(err))
	}

	return projection, nil
}

func (g *Guard) latestLocation(deviceID string, guardianID int64) (*models.LocationProjection, error) {
	var sample models.LocationSample
	err := g.Db.Conn.
		Where("device_id = ? AND guardian_id = ?", deviceID, guardianID).
		Order("created_at desc").
		First(&sample).Error
	if err != nil {
		return nil, fmt.Errorf("%w: no location for device %s", ErrNotFound, deviceID)
	}
	return projectSample(&sample), nil
}

func (g *Guard) locationHistory(deviceID string, start, end *time.Time) ([]models.LocationSample, error) {
	query := g.Db.Conn.Where("device_id = ?", deviceID)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var samples []models.LocationSample
	err := query.Order("created_at asc").Find(&samples).Error
	return samples, err
}

func projectSample(sample *models.LocationSample) *models.LocationProjection {
	return &models.LocationProjection{
		DeviceID:   sample.DeviceID,
		Latitude:   sample.Latitude,
		Longitude:  sample.Longitude,
		Accuracy:   sample.Accuracy,
		CreateTime: sample.CreatedAt.Format(time.RFC3339),
	}
}

type ILocationImpl struct {
	guard *Guard
}

func (il *ILocationImpl) Report(deviceID string, input *models.LocationReport) (*models.LocationProjection, error) {
	return il.guard.reportLocation(deviceID, input)
}

func (il *ILocationImpl) LatestLocation(deviceID string, guardianID int64) (*models.LocationProjection, error) {
	return il.guard.latestLocation(deviceID, guardianID)
}

func (il *ILocationImpl) History(deviceID string, start, end *time.Time) ([]models.LocationSample, error) {
	return il.guard.locationHistory(deviceID, start, end)
}

func (g *Guard) GetILocation() ILocation {
	return &ILocationImpl{guard: g}
}
