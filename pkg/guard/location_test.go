package guard

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"wardmap.xyz/ward-track-service/pkg/common"
	"wardmap.xyz/ward-track-service/pkg/models"
	_ "wardmap.xyz/ward-track-service/pkg/testing"
)

func TestReportLocation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	projection, err := guardObj.Location.Report(deviceID, &models.LocationReport{
		Latitude:   31.2304,
		Longitude:  121.4737,
		Accuracy:   8.5,
		GuardianID: 42,
	})
	assert.NoError(t, err)
	assert.Equal(t, deviceID, projection.DeviceID)
	assert.Equal(t, 31.2304, projection.Latitude)
	assert.Equal(t, 121.4737, projection.Longitude)

	// row persisted
	var samples []models.LocationSample
	err = guardObj.Db.Conn.Where("device_id = ?", deviceID).Find(&samples).Error
	assert.NoError(t, err)
	assert.Len(t, samples, 1)
	assert.Equal(t, int64(42), samples[0].GuardianID)
}

func TestReportLocationRejectsOutOfRange(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	cases := []models.LocationReport{
		{Latitude: 95, Longitude: 10, Accuracy: 1},
		{Latitude: -95, Longitude: 10, Accuracy: 1},
		{Latitude: 10, Longitude: 181, Accuracy: 1},
		{Latitude: 10, Longitude: -181, Accuracy: 1},
		{Latitude: 10, Longitude: 10, Accuracy: -0.1},
	}
	for _, input := range cases {
		_, err := guardObj.Location.Report(deviceID, &input)
		assert.ErrorIs(t, err, ErrValidation)
	}

	// nothing persisted for any rejected report
	var count int64
	err := guardObj.Db.Conn.Model(&models.LocationSample{}).
		Where("device_id = ?", deviceID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestReportLocationPushesProjection(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	pusher := newCapturePusher()
	guardObj.Pusher = pusher

	deviceID := uuid.NewString()

	_, err := guardObj.Location.Report(deviceID, &models.LocationReport{
		Latitude:   1.0,
		Longitude:  2.0,
		Accuracy:   3.0,
		GuardianID: 7,
	})
	assert.NoError(t, err)

	payloads := pusher.pushed(7)
	assert.Len(t, payloads, 1)

	// routine location updates go out untagged
	var got map[string]any
	err = json.Unmarshal(payloads[0], &got)
	assert.NoError(t, err)
	assert.Equal(t, deviceID, got["deviceId"])
	assert.Equal(t, 1.0, got["latitude"])
	assert.NotContains(t, got, "type")
}

func TestReportLocationSurvivesEvaluationFailure(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, guardObj, _, mockIFence, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, true, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	mockIFence.EXPECT().Evaluate(gomock.Any()).Return(assert.AnError)

	projection, err := guardObj.Location.Report(deviceID, &models.LocationReport{
		Latitude:   1.0,
		Longitude:  2.0,
		GuardianID: 7,
	})
	assert.NoError(t, err)
	assert.NotNil(t, projection)

	logs := ParseLogs(buf)
	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["category"] == "location" &&
			lobj["logger"] == "guard_core" &&
			lobj["msg"] == "Fence evaluation failed" &&
			lobj["device_id"] == deviceID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLatestLocation(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()

	older := models.LocationSample{
		DeviceID: deviceID, Latitude: 1, Longitude: 1, GuardianID: 9,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := models.LocationSample{
		DeviceID: deviceID, Latitude: 2, Longitude: 2, GuardianID: 9,
		CreatedAt: time.Now(),
	}
	assert.NoError(t, guardObj.Db.Conn.Create(&older).Error)
	assert.NoError(t, guardObj.Db.Conn.Create(&newer).Error)

	projection, err := guardObj.Location.LatestLocation(deviceID, 9)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, projection.Latitude)

	// scoped to the requesting guardian
	_, err = guardObj.Location.LatestLocation(deviceID, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationHistoryWindow(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, guardObj, _, _, _, _, _ := GetMockGuardWithMemorySqliteDialector(t, false, false, false, false, false)
	defer ctrl.Finish()

	deviceID := uuid.NewString()
	base := time.Now().Add(-3 * time.Hour)

	for i := 0; i < 3; i++ {
		sample := models.LocationSample{
			DeviceID:  deviceID,
			Latitude:  float64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		assert.NoError(t, guardObj.Db.Conn.Create(&sample).Error)
	}

	start := base.Add(30 * time.Minute)
	end := base.Add(150 * time.Minute)
	samples, err := guardObj.Location.History(deviceID, &start, &end)
	assert.NoError(t, err)
	assert.Len(t, samples, 1)
	assert.Equal(t, 1.0, samples[0].Latitude)

	all, err := guardObj.Location.History(deviceID, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	// ascending order
	assert.Equal(t, 0.0, all[0].Latitude)
	assert.Equal(t, 2.0, all[2].Latitude)
}
