package guard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
	_ "wardmap.xyz/ward-track-service/pkg/testing"
)

func TestNotifyGuardianAndList(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	guardianID := int64(700001)

	assert.NoError(t, guardObj.Notify.NotifyGuardian(guardianID, "first", "1"))
	assert.NoError(t, guardObj.Notify.NotifyGuardian(guardianID, "second", "1"))

	notes, err := guardObj.Notify.ListNotifications(guardianID)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	// newest first
	assert.Equal(t, "second", notes[0].Message)
}

func TestNotifyWardResolvesDeviceUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	device := models.Device{ID: deviceID, UserID: 700002, Name: "watch"}
	assert.NoError(t, guardObj.Db.Conn.Create(&device).Error)

	assert.NoError(t, guardObj.Notify.NotifyWard(deviceID, "hello ward", "2"))

	notes, err := guardObj.Notify.ListNotifications(700002)
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "hello ward", notes[0].Message)
}

func TestNotifyWardUnknownDeviceIsDropped(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	// unknown recipient is logged and dropped, not an error
	assert.NoError(t, guardObj.Notify.NotifyWard(uuid.NewString(), "into the void", "3"))
}
