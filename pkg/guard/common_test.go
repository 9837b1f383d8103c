package guard

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"
	"wardmap.xyz/ward-track-service/pkg/db"
	"wardmap.xyz/ward-track-service/pkg/guard/mocks"
)

func GetMockGuardWithMemorySqliteDialector(t *testing.T,
	useMockILocation, useMockIFence, useMockIAlert, useMockIApplication, useMockINotify bool) (
	*gomock.Controller,
	*Guard,
	*mocks.MockILocation,
	*mocks.MockIFence,
	*mocks.MockIAlert,
	*mocks.MockIApplication,
	*mocks.MockINotify,
) {
	ctrl := gomock.NewController(t)

	mockILocation := mocks.NewMockILocation(ctrl)
	mockIFence := mocks.NewMockIFence(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIApplication := mocks.NewMockIApplication(ctrl)
	mockINotify := mocks.NewMockINotify(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	guardInstance := (&Guard{Db: *dbInstance})

	locationService := guardInstance.GetILocation()
	if useMockILocation {
		locationService = mockILocation
	}

	fenceService := guardInstance.GetIFence()
	if useMockIFence {
		fenceService = mockIFence
	}

	alertService := guardInstance.GetIAlert()
	if useMockIAlert {
		alertService = mockIAlert
	}

	applicationService := guardInstance.GetIApplication()
	if useMockIApplication {
		applicationService = mockIApplication
	}

	notifyService := guardInstance.GetINotify()
	if useMockINotify {
		notifyService = mockINotify
	}

	guardInstance.WithServices(ServiceOpts{
		Location:    locationService,
		Fence:       fenceService,
		Alert:       alertService,
		Application: applicationService,
		Notify:      notifyService,
	})

	return ctrl, guardInstance, mockILocation, mockIFence, mockIAlert, mockIApplication, mockINotify
}

// capturePusher records every pushed payload for assertions.
type capturePusher struct {
	mu       sync.Mutex
	payloads map[int64][][]byte
}

func newCapturePusher() *capturePusher {
	return &capturePusher{payloads: make(map[int64][][]byte)}
}

func (c *capturePusher) Push(guardianID int64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads[guardianID] = append(c.payloads[guardianID], payload)
}

func (c *capturePusher) pushed(guardianID int64) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payloads[guardianID]
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
