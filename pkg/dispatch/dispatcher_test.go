package dispatch

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"wardmap.xyz/ward-track-service/pkg/common"
	_ "wardmap.xyz/ward-track-service/pkg/testing"
)

// fakeSession records everything the dispatcher does to it.
type fakeSession struct {
	mu      sync.Mutex
	sent    [][]byte
	pings   int
	closes  int
	sendErr error
	pingErr error
}

func (f *fakeSession) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	f.sent = append(f.sent, buf)
	return nil
}

func (f *fakeSession) SendPing() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pingErr != nil {
		return f.pingErr
	}
	f.pings++
	return nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeSession) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSession) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

func (f *fakeSession) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

func (f *fakeSession) failWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

func TestPushFansOutAcrossDevices(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()
	defer d.Shutdown()

	watch := &fakeSession{}
	phone := &fakeSession{}
	other := &fakeSession{}

	d.Register(1, "watch-1", watch)
	d.Register(1, "phone-1", phone)
	d.Register(2, "watch-2", other)

	d.Push(1, []byte("hello"))

	assert.Equal(t, 1, watch.sentCount())
	assert.Equal(t, 1, phone.sentCount())
	assert.Equal(t, 0, other.sentCount())
}

func TestPushToUnknownGuardianIsQuiet(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()
	defer d.Shutdown()

	d.Push(404, []byte("nobody home"))
	assert.Equal(t, 0, d.SessionCount())
}

func TestRegisterSupersedes(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()
	defer d.Shutdown()

	first := &fakeSession{}
	second := &fakeSession{}

	d.Register(1, "watch-1", first)
	d.Register(1, "watch-1", second)

	// the old session was closed, the pair still counts once
	assert.Equal(t, 1, first.closeCount())
	assert.Equal(t, 1, d.SessionCount())

	d.Push(1, []byte("to the new one"))
	assert.Equal(t, 0, first.sentCount())
	assert.Equal(t, 1, second.sentCount())
}

func TestDeregisterIgnoresSupersededSession(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()
	defer d.Shutdown()

	first := &fakeSession{}
	second := &fakeSession{}

	d.Register(1, "watch-1", first)
	d.Register(1, "watch-1", second)

	// the superseded connection's read loop winds down and deregisters;
	// that must not evict the replacement
	d.Deregister(1, "watch-1", first)
	assert.Equal(t, 1, d.SessionCount())

	d.Deregister(1, "watch-1", second)
	assert.Equal(t, 0, d.SessionCount())
	assert.Equal(t, 1, second.closeCount())
}

func TestPushFailureDropsOnlyFailingSession(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()
	defer d.Shutdown()

	healthy := &fakeSession{}
	broken := &fakeSession{}
	broken.failWrites(errors.New("write: broken pipe"))

	d.Register(1, "watch-1", healthy)
	d.Register(1, "phone-1", broken)

	d.Push(1, []byte("one"))
	d.Push(1, []byte("two"))

	assert.Equal(t, 2, healthy.sentCount())
	assert.Equal(t, 1, broken.closeCount())
	assert.Equal(t, 1, d.SessionCount())
}

func TestShutdownClosesEverything(t *testing.T) {
	common.SetTestLoggerNop()

	d := New()

	sessions := []*fakeSession{{}, {}, {}}
	d.Register(1, "a", sessions[0])
	d.Register(1, "b", sessions[1])
	d.Register(2, "c", sessions[2])

	d.Shutdown()

	assert.Equal(t, 0, d.SessionCount())
	for _, s := range sessions {
		assert.Equal(t, 1, s.closeCount())
	}

	// idempotent
	d.Shutdown()
	for _, s := range sessions {
		assert.Equal(t, 1, s.closeCount())
	}
}
