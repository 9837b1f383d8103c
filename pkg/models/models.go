package models

import (
	"time"

	"wardmap.xyz/ward-track-service/pkg/geo"
)

type AlertType string

const (
	AlertTypeGeoFence      AlertType = "GEO_FENCE"
	AlertTypeDeviceOffline AlertType = "DEVICE_OFFLINE"
	AlertTypeBatteryLow    AlertType = "BATTERY_LOW"
	AlertTypeSOS           AlertType = "SOS"
)

type AlertLevel string

const (
	AlertLevelInfo     AlertLevel = "INFO"
	AlertLevelWarning  AlertLevel = "WARNING"
	AlertLevelCritical AlertLevel = "CRITICAL"
)

type AlertStatus string

const (
	AlertStatusUnresolved AlertStatus = "UNRESOLVED"
	AlertStatusResolved   AlertStatus = "RESOLVED"
	AlertStatusIgnored    AlertStatus = "IGNORED"
	AlertStatusDeleted    AlertStatus = "DELETED"
)

type ApplicationStatus string

const (
	ApplicationStatusPending             ApplicationStatus = "PENDING"
	ApplicationStatusPendingConfirmation ApplicationStatus = "PENDING_CONFIRMATION"
	ApplicationStatusApproved            ApplicationStatus = "APPROVED"
	ApplicationStatusRejected            ApplicationStatus = "REJECTED"
)

// LocationSample is one reported position, immutable once stored.
type LocationSample struct {
	ID         uint   `gorm:"primaryKey"`
	DeviceID   string `gorm:"index"`
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	GuardianID int64     `gorm:"index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Fence is a closed polygon perimeter owned by one guardian.
// Vertices are stored as a JSON [[lon,lat],...] column and decoded
// into a typed ring when the row leaves the store.
type Fence struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerID   int64  `gorm:"index"`
	DeviceID  string `gorm:"index"`
	Name      string
	Vertices  geo.Ring `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Alert struct {
	ID          uint   `gorm:"primaryKey"`
	DeviceID    string `gorm:"index"`
	FenceID     *uint  `gorm:"index"`
	Type        AlertType  `gorm:"type:varchar(20);check:type IN ('GEO_FENCE','DEVICE_OFFLINE','BATTERY_LOW','SOS')"`
	Level       AlertLevel `gorm:"type:varchar(20)"`
	Message     string
	Latitude    float64
	Longitude   float64
	TriggeredAt time.Time
	ResolvedAt  *time.Time
	Status      AlertStatus `gorm:"type:varchar(20);check:status IN ('UNRESOLVED','RESOLVED','IGNORED','DELETED')"`
}

// Application is a device-binding approval request. Status only ever
// moves forward: PENDING -> {PENDING_CONFIRMATION, REJECTED} and
// PENDING_CONFIRMATION -> {APPROVED, REJECTED}.
type Application struct {
	ID           uint  `gorm:"primaryKey"`
	GuardianID   int64 `gorm:"index"`
	WardDeviceID string `gorm:"index"`
	Status       ApplicationStatus `gorm:"type:varchar(24);check:status IN ('PENDING','PENDING_CONFIRMATION','APPROVED','REJECTED')"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Notification struct {
	ID            uint  `gorm:"primaryKey"`
	UserID        int64 `gorm:"index"`
	Message       string
	ApplicationID string
	IsRead        int
	CreatedAt     time.Time
}

// Device is the monitored hardware and its user/guardian bindings.
// Device CRUD lives outside this service; the rows are consulted for
// ward resolution and updated when an application is approved.
type Device struct {
	ID         string `gorm:"primaryKey"`
	UserID     int64  `gorm:"index"`
	GuardianID int64
	Name       string
}
