package guard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
	_ "wardmap.xyz/ward-track-service/pkg/testing"
)

func seedAlert(t *testing.T, guardObj *Guard, deviceID string, fenceID uint, status models.AlertStatus) *models.Alert {
	t.Helper()
	alert := models.Alert{
		DeviceID:    deviceID,
		FenceID:     &fenceID,
		Type:        models.AlertTypeGeoFence,
		Level:       models.AlertLevelWarning,
		Message:     "Device left fence",
		TriggeredAt: time.Now(),
		Status:      status,
	}
	assert.NoError(t, guardObj.Db.Conn.Create(&alert).Error)
	return &alert
}

func TestCreateAlertDuplicateUnresolved(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	fenceID := uint(1)

	first := models.Alert{
		DeviceID: deviceID, FenceID: &fenceID,
		Type: models.AlertTypeGeoFence, Level: models.AlertLevelWarning,
		TriggeredAt: time.Now(), Status: models.AlertStatusUnresolved,
	}
	created, err := guardObj.Alert.CreateAlert(&first)
	assert.NoError(t, err)
	assert.True(t, created)

	// second unresolved alert for the same (device, fence) loses to the
	// partial unique index and reports created=false, not an error
	second := models.Alert{
		DeviceID: deviceID, FenceID: &fenceID,
		Type: models.AlertTypeGeoFence, Level: models.AlertLevelWarning,
		TriggeredAt: time.Now(), Status: models.AlertStatusUnresolved,
	}
	created, err = guardObj.Alert.CreateAlert(&second)
	assert.NoError(t, err)
	assert.False(t, created)

	// resolved rows do not block a fresh unresolved one
	_, err = guardObj.Alert.UpdateAlertStatus([]uint{first.ID}, models.AlertStatusResolved)
	assert.NoError(t, err)

	third := models.Alert{
		DeviceID: deviceID, FenceID: &fenceID,
		Type: models.AlertTypeGeoFence, Level: models.AlertLevelWarning,
		TriggeredAt: time.Now(), Status: models.AlertStatusUnresolved,
	}
	created, err = guardObj.Alert.CreateAlert(&third)
	assert.NoError(t, err)
	assert.True(t, created)
}

func TestHasUnresolvedAlert(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	exists, err := guardObj.Alert.HasUnresolvedAlert(deviceID, 1)
	assert.NoError(t, err)
	assert.False(t, exists)

	seedAlert(t, guardObj, deviceID, 1, models.AlertStatusUnresolved)

	exists, err = guardObj.Alert.HasUnresolvedAlert(deviceID, 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	// different fence on the same device is independent
	exists, err = guardObj.Alert.HasUnresolvedAlert(deviceID, 2)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestListAlertsFilter(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	otherDevice := uuid.NewString()

	seedAlert(t, guardObj, deviceID, 1, models.AlertStatusUnresolved)
	seedAlert(t, guardObj, deviceID, 2, models.AlertStatusResolved)
	seedAlert(t, guardObj, otherDevice, 3, models.AlertStatusUnresolved)

	alerts, err := guardObj.Alert.ListAlerts(models.AlertFilter{DeviceID: deviceID})
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)

	alerts, err = guardObj.Alert.ListAlerts(models.AlertFilter{
		DeviceID: deviceID, Status: models.AlertStatusUnresolved,
	})
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)

	alerts, err = guardObj.Alert.ListAlerts(models.AlertFilter{Type: models.AlertTypeGeoFence})
	assert.NoError(t, err)
	assert.Len(t, alerts, 3)
}

func TestUpdateAlertStatusBatch(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	open := seedAlert(t, guardObj, deviceID, 1, models.AlertStatusUnresolved)
	ignored := seedAlert(t, guardObj, deviceID, 2, models.AlertStatusIgnored)
	missing := uint(99999)

	result, err := guardObj.Alert.UpdateAlertStatus(
		[]uint{open.ID, ignored.ID, missing}, models.AlertStatusResolved)
	assert.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, result.Updated)
	assert.ElementsMatch(t, []uint{ignored.ID, missing}, result.NotUpdated)

	var reloaded models.Alert
	assert.NoError(t, guardObj.Db.Conn.First(&reloaded, "id = ?", open.ID).Error)
	assert.Equal(t, models.AlertStatusResolved, reloaded.Status)
	assert.NotNil(t, reloaded.ResolvedAt)

	// the IGNORED row was left alone
	assert.NoError(t, guardObj.Db.Conn.First(&reloaded, "id = ?", ignored.ID).Error)
	assert.Equal(t, models.AlertStatusIgnored, reloaded.Status)
}

func TestUpdateAlertStatusIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	open := seedAlert(t, guardObj, deviceID, 1, models.AlertStatusUnresolved)

	result, err := guardObj.Alert.UpdateAlertStatus([]uint{open.ID}, models.AlertStatusIgnored)
	assert.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, result.Updated)

	// repeating the same transition reports the id as updated again
	result, err = guardObj.Alert.UpdateAlertStatus([]uint{open.ID}, models.AlertStatusIgnored)
	assert.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, result.Updated)

	// but a different terminal target does not regress it
	result, err = guardObj.Alert.UpdateAlertStatus([]uint{open.ID}, models.AlertStatusResolved)
	assert.NoError(t, err)
	assert.Equal(t, []uint{open.ID}, result.NotUpdated)
}

func TestUpdateAlertStatusDelete(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	open := seedAlert(t, guardObj, deviceID, 1, models.AlertStatusUnresolved)
	resolved := seedAlert(t, guardObj, deviceID, 2, models.AlertStatusResolved)
	missing := uint(99999)

	result, err := guardObj.Alert.UpdateAlertStatus(
		[]uint{open.ID, resolved.ID, missing}, models.AlertStatusDeleted)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{open.ID, resolved.ID}, result.Updated)
	assert.Equal(t, []uint{missing}, result.NotUpdated)

	var count int64
	assert.NoError(t, guardObj.Db.Conn.Model(&models.Alert{}).
		Where("device_id = ?", deviceID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateAlertStatusValidation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	_, err := guardObj.Alert.UpdateAlertStatus(nil, models.AlertStatusResolved)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = guardObj.Alert.UpdateAlertStatus([]uint{1}, models.AlertStatusUnresolved)
	assert.ErrorIs(t, err, ErrValidation)
}
