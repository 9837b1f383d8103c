package guard

import (
	"time"

	"wardmap.xyz/ward-track-service/pkg/db"
	"wardmap.xyz/ward-track-service/pkg/models"
)

type ILocation interface {
	Report(deviceID string, input *models.LocationReport) (*models.LocationProjection, error)
	LatestLocation(deviceID string, guardianID int64) (*models.LocationProjection, error)
	History(deviceID string, start, end *time.Time) ([]models.LocationSample, error)
}

type IFence interface {
	CreateFence(ownerID int64, input *models.FenceInput) (*models.Fence, error)
	ListFences(deviceID string, ownerID int64) ([]models.Fence, error)
	UpdateFence(fenceID uint, ownerID int64, input *models.FenceInput) error
	DeleteFence(fenceID uint, ownerID int64) error
	Evaluate(loc *models.LocationProjection) error
}

type IAlert interface {
	HasUnresolvedAlert(deviceID string, fenceID uint) (bool, error)
	CreateAlert(alert *models.Alert) (bool, error)
	ListAlerts(filter models.AlertFilter) ([]models.Alert, error)
	UpdateAlertStatus(ids []uint, status models.AlertStatus) (*models.BatchResult, error)
}

type IApplication interface {
	SubmitApplication(guardianID int64, wardDeviceID string) (*models.Application, error)
	ProcessSubmission(msg *models.ApplicationMessage) error
	ConfirmApplication(notificationID uint, approved bool) error
}

type INotify interface {
	NotifyGuardian(guardianID int64, message string, applicationID string) error
	NotifyWard(wardDeviceID string, message string, applicationID string) error
	ListNotifications(userID int64) ([]models.Notification, error)
}

// Pusher delivers a serialized payload to every live connection of a
// guardian. Delivery is best-effort; the dispatcher owns the rest.
type Pusher interface {
	Push(guardianID int64, payload []byte)
}

// ApplicationPublisher hands a submission envelope to the queue.
type ApplicationPublisher interface {
	PublishSubmission(msg *models.ApplicationMessage) error
}

type Guard struct {
	Db        db.DB
	Pusher    Pusher
	Publisher ApplicationPublisher

	Location    ILocation
	Fence       IFence
	Alert       IAlert
	Application IApplication
	Notify      INotify
}

type ServiceOpts struct {
	Location    ILocation
	Fence       IFence
	Alert       IAlert
	Application IApplication
	Notify      INotify
}

func (g *Guard) WithServices(opts ServiceOpts) *Guard {
	if opts.Location != nil {
		g.Location = opts.Location
	}
	if opts.Fence != nil {
		g.Fence = opts.Fence
	}
	if opts.Alert != nil {
		g.Alert = opts.Alert
	}
	if opts.Application != nil {
		g.Application = opts.Application
	}
	if opts.Notify != nil {
		g.Notify = opts.Notify
	}
	return g
}
