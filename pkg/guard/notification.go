package guard

import (
	"go.uber.org/zap"
	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
)

func (g *Guard) notifyGuardian(guardianID int64, message string, applicationID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryNotify),
	)

	notification := models.Notification{
		UserID:        guardianID,
		Message:       message,
		ApplicationID: applicationID,
	}
	if err := g.Db.Conn.Create(&notification).Error; err != nil {
		return err
	}

	logger.Info("Notification stored for guardian",
		zap.Int64("guardian_id", guardianID), zap.String("message", message))
	return nil
}

// notifyWard resolves the ward user through the device binding. A
// missing device is logged and dropped, matching how a notification to
// an unknown recipient behaves elsewhere in the system.
func (g *Guard) notifyWard(wardDeviceID string, message string, applicationID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryNotify),
	)

	var device models.Device
	if err := g.Db.Conn.First(&device, "id = ?", wardDeviceID).Error; err != nil {
		logger.Error("No device record for ward notification",
			zap.String("device_id", wardDeviceID))
		return nil
	}

	notification := models.Notification{
		UserID:        device.UserID,
		Message:       message,
		ApplicationID: applicationID,
	}
	if err := g.Db.Conn.Create(&notification).Error; err != nil {
		return err
	}

	logger.Info("Notification stored for ward",
		zap.Int64("user_id", device.UserID), zap.String("message", message))
	return nil
}

func (g *Guard) listNotifications(userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := g.Db.Conn.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

type INotifyImpl struct {
	guard *Guard
}

func (in *INotifyImpl) NotifyGuardian(guardianID int64, message string, applicationID string) error {
	return in.guard.notifyGuardian(guardianID, message, applicationID)
}

func (in *INotifyImpl) NotifyWard(wardDeviceID string, message string, applicationID string) error {
	return in.guard.notifyWard(wardDeviceID, message, applicationID)
}

func (in *INotifyImpl) ListNotifications(userID int64) ([]models.Notification, error) {
	return in.guard.listNotifications(userID)
}

func (g *Guard) GetINotify() INotify {
	return &INotifyImpl{guard: g}
}
