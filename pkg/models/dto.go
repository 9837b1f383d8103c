package models

import "wardmap.xyz/ward-track-service/pkg/geo"

// LocationReport is a validated inbound position report.
type LocationReport struct {
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	GuardianID int64
}

// LocationProjection is the untagged payload pushed to guardians for
// routine location updates. Alert pushes use a tagged envelope instead;
// clients rely on that asymmetry.
type LocationProjection struct {
	DeviceID   string  `json:"deviceId"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Accuracy   float64 `json:"accuracy"`
	CreateTime string  `json:"createTime"`
}

// AlertMessage is the payload inside an ALERT push envelope.
type AlertMessage struct {
	Type        AlertType `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Longitude   float64   `json:"longitude"`
	Latitude    float64   `json:"latitude"`
	TriggeredAt string    `json:"triggeredAt"`
}

// ApplicationMessage is the queue envelope for binding submissions.
// RetryCount is carried in the body, typed, defaulting to 0.
type ApplicationMessage struct {
	ApplicationID uint   `json:"applicationId"`
	GuardianID    int64  `json:"guardianId"`
	WardDeviceID  string `json:"wardDeviceId"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	RetryCount    int    `json:"retryCount"`
}

type FenceInput struct {
	DeviceID string
	Name     string
	Vertices []geo.Point
}

type AlertFilter struct {
	DeviceID string
	Type     AlertType
	Status   AlertStatus
}

// BatchResult reports a batch alert transition: ids applied and ids
// that were not (missing, or already in another terminal state).
type BatchResult struct {
	Updated    []uint `json:"updated"`
	NotUpdated []uint `json:"notUpdated"`
}
