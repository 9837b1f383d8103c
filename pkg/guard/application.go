package guard

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
)

// submitApplication persists a PENDING binding request and enqueues it
// for asynchronous processing. The submitter is acknowledged as soon as
// the row exists; the outcome arrives later through notifications.
func (g *Guard) submitApplication(guardianID int64, wardDeviceID string) (*models.Application, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryApplication),
	)

	application := models.Application{
		GuardianID:   guardianID,
		WardDeviceID: wardDeviceID,
		Status:       models.ApplicationStatusPending,
	}
	if err := g.Db.Conn.Create(&application).Error; err != nil {
		return nil, err
	}

	logger.Info("Application submitted", zap.Reflect("application", application))

	if g.Publisher == nil {
		logger.Warn("No publisher configured, application will not be processed",
			zap.Uint("application_id", application.ID))
		return &application, nil
	}

	msg := &models.ApplicationMessage{
		ApplicationID: application.ID,
		GuardianID:    guardianID,
		WardDeviceID:  wardDeviceID,
		Status:        string(models.ApplicationStatusPending),
		Timestamp:     time.Now().Format(time.RFC3339),
	}
	if err := g.Publisher.PublishSubmission(msg); err != nil {
		logger.Error("Failed to enqueue application submission",
			zap.Uint("application_id", application.ID), zap.Error(err))
	}

	return &application, nil
}

// processSubmission is the per-message workflow: resolve the request,
// notify the guardian, validate the ward device, transition the state
// and notify both parties. Store and notification faults come back
// wrapped in ErrRecoverable so the consumer can route them to the
// delayed-retry path; a missing application comes back as ErrNotFound
// and is safe to acknowledge and drop.
func (g *Guard) processSubmission(msg *models.ApplicationMessage) error {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryApplication),
	)

	var application models.Application
	err := g.Db.Conn.First(&application,
		"ward_device_id = ? AND guardian_id = ?", msg.WardDeviceID, msg.GuardianID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: application for guardian %d and device %s",
				ErrNotFound, msg.GuardianID, msg.WardDeviceID)
		}
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}

	applicationID := strconv.FormatUint(uint64(application.ID), 10)

	if err := g.Notify.NotifyGuardian(msg.GuardianID,
		"Application submitted, awaiting review", applicationID); err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}

	deviceValid, err := g.deviceExists(msg.WardDeviceID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}

	if deviceValid {
		moved, err := g.transitionApplication(application.ID,
			models.ApplicationStatusPending, models.ApplicationStatusPendingConfirmation)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRecoverable, err)
		}
		if !moved {
			// duplicate delivery after the transition already happened
			logger.Info("Application already past PENDING, dropping duplicate",
				zap.Uint("application_id", application.ID))
			return nil
		}

		logger.Info("Application approved for review, awaiting ward confirmation",
			zap.String("ward_device_id", msg.WardDeviceID))

		if err := g.Notify.NotifyGuardian(msg.GuardianID,
			"Application passed review, awaiting ward confirmation", applicationID); err != nil {
			return fmt.Errorf("%w: %v", ErrRecoverable, err)
		}
		if err := g.Notify.NotifyWard(msg.WardDeviceID,
			"You have a pending binding application", applicationID); err != nil {
			return fmt.Errorf("%w: %v", ErrRecoverable, err)
		}
		return nil
	}

	moved, err := g.transitionApplication(application.ID,
		models.ApplicationStatusPending, models.ApplicationStatusRejected)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}
	if !moved {
		logger.Info("Application already past PENDING, dropping duplicate",
			zap.Uint("application_id", application.ID))
		return nil
	}

	logger.Info("Application rejected, ward device invalid",
		zap.String("ward_device_id", msg.WardDeviceID))

	if err := g.Notify.NotifyGuardian(msg.GuardianID,
		"Application rejected, ward device id invalid", applicationID); err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}
	if err := g.Notify.NotifyWard(msg.WardDeviceID,
		"Binding application rejected", applicationID); err != nil {
		return fmt.Errorf("%w: %v", ErrRecoverable, err)
	}
	return nil
}

// confirmApplication finalizes a PENDING_CONFIRMATION request. The
// compare-and-set on status is the correctness guard: a repeated
// confirm on an already-terminal application fails with
// ErrStateConflict instead of regressing the state.
func (g *Guard) confirmApplication(notificationID uint, approved bool) error {
	logger := common.GetLoggerWith(
		common.LoggerNameGuardCore,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryApplication),
	)

	var notification models.Notification
	if err := g.Db.Conn.First(&notification, "id = ?", notificationID).Error; err != nil {
		return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}

	applicationID, err := strconv.ParseUint(notification.ApplicationID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: notification %d has no linked application", ErrNotFound, notificationID)
	}

	var application models.Application
	if err := g.Db.Conn.First(&application, "id = ?", applicationID).Error; err != nil {
		return fmt.Errorf("%w: application %d", ErrNotFound, applicationID)
	}

	target := models.ApplicationStatusApproved
	if !approved {
		target = models.ApplicationStatusRejected
	}

	moved, err := g.transitionApplication(application.ID,
		models.ApplicationStatusPendingConfirmation, target)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("%w: application %d is not awaiting confirmation",
			ErrStateConflict, application.ID)
	}

	// the prompting notification is consumed by the confirmation
	if err := g.Db.Conn.Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Update("is_read", 1).Error; err != nil {
		logger.Warn("Failed to mark notification read",
			zap.Uint("notification_id", notification.ID), zap.Error(err))
	}

	if approved {
		g.Notify.NotifyGuardian(application.GuardianID, "Your application was approved", notification.ApplicationID)
		g.Notify.NotifyWard(application.WardDeviceID, "Binding application approved", notification.ApplicationID)

		result := g.Db.Conn.Model(&models.Device{}).
			Where("id = ?", application.WardDeviceID).
			Update("guardian_id", application.GuardianID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			logger.Warn("No device row to bind after approval",
				zap.String("device_id", application.WardDeviceID))
		}
	} else {
		g.Notify.NotifyGuardian(application.GuardianID, "Your application was rejected", notification.ApplicationID)
		g.Notify.NotifyWard(application.WardDeviceID, "Binding application rejected", notification.ApplicationID)
	}

	logger.Info("Application confirmed",
		zap.Uint("application_id", application.ID),
		zap.String("status", string(target)))
	return nil
}

// transitionApplication advances status with a compare-and-set; a
// false return means the row was not in the expected state.
func (g *Guard) transitionApplication(id uint, from, to models.ApplicationStatus) (bool, error) {
	result := g.Db.Conn.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (g *Guard) deviceExists(deviceID string) (bool, error) {
	var count int64
	err := g.Db.Conn.Model(&models.Device{}).Where("id = ?", deviceID).Count(&count).Error
	return count > 0, err
}

type IApplicationImpl struct {
	guard *Guard
}

func (ia *IApplicationImpl) SubmitApplication(guardianID int64, wardDeviceID string) (*models.Application, error) {
	return ia.guard.submitApplication(guardianID, wardDeviceID)
}

func (ia *IApplicationImpl) ProcessSubmission(msg *models.ApplicationMessage) error {
	return ia.guard.processSubmission(msg)
}

func (ia *IApplicationImpl) ConfirmApplication(notificationID uint, approved bool) error {
	return ia.guard.confirmApplication(notificationID, approved)
}

func (g *Guard) GetIApplication() IApplication {
	return &IApplicationImpl{guard: g}
}
