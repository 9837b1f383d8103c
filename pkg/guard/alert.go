package guard

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
)

func (g *Guard) hasUnresolvedAlert(deviceID string, fenceID uint) (bool, error) {
	var count int64
	err := g.Db.Conn.Model(&models.Alert{}).
		Where("device_id = ? AND fence_id = ? AND status = ?",
			deviceID, fenceID, models.AlertStatusUnresolved).
		Count(&count).Error
	return count > 0, err
}

// createAlert stores a new alert. The partial unique index on
// (device_id, fence_id) WHERE status = 'UNRESOLVED' is the real dedup
// guard; a uniqueness violation means a concurrent evaluation already
// created the alert, reported as created=false rather than an error.
func (g *Guard) createAlert(alert *models.Alert) (bool, error) {
	err := g.Db.Conn.Create(alert).Error
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (g *Guard) listAlerts(filter models.AlertFilter) ([]models.Alert, error) {
	query := g.Db.Conn.Model(&models.Alert{})
	if filter.DeviceID != "" {
		query = query.Where("device_id = ?", filter.DeviceID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var alerts []models.Alert
	err := query.Order("triggered_at desc").Find(&alerts).Error
	return alerts, err
}

// updateAlertStatus transitions a batch of alerts to one terminal
// status. Ids that do not exist, or that already sit in a different
// terminal state, are reported back as not-updated; successes are
// never rolled back on their account. DELETED removes the rows.
func (g *Guard) updateAlertStatus(ids []uint, status models.AlertStatus) (*models.BatchResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryAlert),
	)

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no alert ids given", ErrValidation)
	}
	switch status {
	case models.AlertStatusResolved, models.AlertStatusIgnored, models.AlertStatusDeleted:
	default:
		return nil, fmt.Errorf("%w: %s is not a valid target status", ErrValidation, status)
	}

	if status == models.AlertStatusDeleted {
		var existing []uint
		if err := g.Db.Conn.Model(&models.Alert{}).
			Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
			return nil, err
		}
		if err := g.Db.Conn.Delete(&models.Alert{}, "id IN ?", ids).Error; err != nil {
			return nil, err
		}
		result := splitBatch(ids, existing)
		logger.Info("Alerts deleted", zap.Uints("ids", result.Updated))
		return result, nil
	}

	var updatable []uint
	if err := g.Db.Conn.Model(&models.Alert{}).
		Where("id IN ? AND status IN ?", ids,
			[]models.AlertStatus{models.AlertStatusUnresolved, status}).
		Pluck("id", &updatable).Error; err != nil {
		return nil, err
	}

	if len(updatable) > 0 {
		err := g.Db.Conn.Model(&models.Alert{}).
			Where("id IN ? AND status = ?", updatable, models.AlertStatusUnresolved).
			Updates(map[string]any{
				"status":      status,
				"resolved_at": time.Now(),
			}).Error
		if err != nil {
			return nil, err
		}
	}

	result := splitBatch(ids, updatable)
	logger.Info("Alert statuses updated",
		zap.String("status", string(status)),
		zap.Uints("updated", result.Updated),
		zap.Uints("not_updated", result.NotUpdated))
	return result, nil
}

func splitBatch(requested, applied []uint) *models.BatchResult {
	appliedSet := make(map[uint]struct{}, len(applied))
	for _, id := range applied {
		appliedSet[id] = struct{}{}
	}

	result := &models.BatchResult{Updated: []uint{}, NotUpdated: []uint{}}
	for _, id := range requested {
		if _, ok := appliedSet[id]; ok {
			result.Updated = append(result.Updated, id)
		} else {
			result.NotUpdated = append(result.NotUpdated, id)
		}
	}
	return result
}

type IAlertImpl struct {
	guard *Guard
}

func (ia *IAlertImpl) HasUnresolvedAlert(deviceID string, fenceID uint) (bool, error) {
	return ia.guard.hasUnresolvedAlert(deviceID, fenceID)
}

func (ia *IAlertImpl) CreateAlert(alert *models.Alert) (bool, error) {
	return ia.guard.createAlert(alert)
}

func (ia *IAlertImpl) ListAlerts(filter models.AlertFilter) ([]models.Alert, error) {
	return ia.guard.listAlerts(filter)
}

func (ia *IAlertImpl) UpdateAlertStatus(ids []uint, status models.AlertStatus) (*models.BatchResult, error) {
	return ia.guard.updateAlertStatus(ids, status)
}

func (g *Guard) GetIAlert() IAlert {
	return &IAlertImpl{guard: g}
}
