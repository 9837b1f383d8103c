// Package dispatch routes serialized push payloads to the live
// WebSocket sessions of guardians and supervises session liveness.
package dispatch

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"wardmap.xyz/ward-track-service/pkg/common"
)

const (
	// DefaultProbeInterval is how often a live session is probed.
	DefaultProbeInterval = 30 * time.Second
	// DefaultIdleTimeout is how long a session may stay silent before
	// it is considered dead. Must exceed the probe interval so a
	// healthy client always gets at least one probe per window.
	DefaultIdleTimeout = 40 * time.Second
)

// HeartbeatText is the text probe sent alongside the ping control
// frame. Clients that cannot see control frames answer the text.
const HeartbeatText = "heartbeat"

// Session is one live client connection. Implementations must be safe
// for concurrent use; the dispatcher writes from multiple goroutines.
type Session interface {
	Send(payload []byte) error
	SendPing() error
	Close() error
}

type entry struct {
	session Session

	mu       sync.Mutex
	lastSeen time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

func newEntry(s Session) *entry {
	return &entry{
		session:  s,
		lastSeen: time.Now(),
		stop:     make(chan struct{}),
	}
}

func (e *entry) touch() {
	e.mu.Lock()
	e.lastSeen = time.Now()
	e.mu.Unlock()
}

func (e *entry) idleFor() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Since(e.lastSeen)
}

// close tears the session down exactly once: the supervisor goroutine
// is released and the underlying connection closed.
func (e *entry) close() {
	e.closeOnce.Do(func() {
		close(e.stop)
		_ = e.session.Close()
	})
}

// Dispatcher tracks sessions per guardian and device. Registering a
// second session for the same (guardian, device) pair supersedes the
// first; pushes fan out to every device session of the guardian.
type Dispatcher struct {
	mu       sync.RWMutex
	sessions map[int64]map[string]*entry

	probeInterval time.Duration
	idleTimeout   time.Duration
}

func New() *Dispatcher {
	return NewWithIntervals(DefaultProbeInterval, DefaultIdleTimeout)
}

func NewWithIntervals(probeInterval, idleTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sessions:      make(map[int64]map[string]*entry),
		probeInterval: probeInterval,
		idleTimeout:   idleTimeout,
	}
}

func (d *Dispatcher) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameDispatcher,
		zap.String(common.LoggerFieldGuardCategory, common.LoggerCategoryHeartbeat),
	)
}

// Register attaches a session for the (guardian, device) pair and
// starts its heartbeat supervisor. An existing session for the same
// pair is closed; the newer connection wins.
func (d *Dispatcher) Register(guardianID int64, deviceID string, s Session) {
	e := newEntry(s)

	d.mu.Lock()
	devices := d.sessions[guardianID]
	if devices == nil {
		devices = make(map[string]*entry)
		d.sessions[guardianID] = devices
	}
	old := devices[deviceID]
	devices[deviceID] = e
	d.mu.Unlock()

	if old != nil {
		d.logger().Info("Superseding live session",
			zap.Int64("guardian_id", guardianID),
			zap.String("device_id", deviceID))
		old.close()
	}

	d.logger().Info("Session registered",
		zap.Int64("guardian_id", guardianID),
		zap.String("device_id", deviceID))

	go d.supervise(guardianID, deviceID, e)
}

// Deregister removes the pair's session if it is still the given one.
// A superseded session calling back in must not evict its replacement.
func (d *Dispatcher) Deregister(guardianID int64, deviceID string, s Session) {
	d.mu.Lock()
	var victim *entry
	if devices := d.sessions[guardianID]; devices != nil {
		if e := devices[deviceID]; e != nil && e.session == s {
			victim = e
			delete(devices, deviceID)
			if len(devices) == 0 {
				delete(d.sessions, guardianID)
			}
		}
	}
	d.mu.Unlock()

	if victim != nil {
		victim.close()
		d.logger().Info("Session deregistered",
			zap.Int64("guardian_id", guardianID),
			zap.String("device_id", deviceID))
	}
}

// Touch records client activity (a pong or a heartbeat text) and
// resets the idle window for the pair's session.
func (d *Dispatcher) Touch(guardianID int64, deviceID string) {
	d.mu.RLock()
	var e *entry
	if devices := d.sessions[guardianID]; devices != nil {
		e = devices[deviceID]
	}
	d.mu.RUnlock()

	if e != nil {
		e.touch()
	}
}

// Push delivers payload to every live session of the guardian. A
// failed write drops only the failing session; the others still get
// the payload.
func (d *Dispatcher) Push(guardianID int64, payload []byte) {
	type target struct {
		deviceID string
		e        *entry
	}

	d.mu.RLock()
	devices := d.sessions[guardianID]
	targets := make([]target, 0, len(devices))
	for deviceID, e := range devices {
		targets = append(targets, target{deviceID: deviceID, e: e})
	}
	d.mu.RUnlock()

	for _, tgt := range targets {
		if err := tgt.e.session.Send(payload); err != nil {
			d.logger().Warn("Push failed, dropping session",
				zap.Int64("guardian_id", guardianID),
				zap.String("device_id", tgt.deviceID),
				zap.Error(err))
			d.drop(guardianID, tgt.deviceID, tgt.e)
		}
	}
}

// SessionCount reports the number of live sessions across guardians.
func (d *Dispatcher) SessionCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, devices := range d.sessions {
		n += len(devices)
	}
	return n
}

// Shutdown closes every session and empties the registry.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	var victims []*entry
	for _, devices := range d.sessions {
		for _, e := range devices {
			victims = append(victims, e)
		}
	}
	d.sessions = make(map[int64]map[string]*entry)
	d.mu.Unlock()

	for _, e := range victims {
		e.close()
	}

	d.logger().Info("Dispatcher shut down", zap.Int("closed", len(victims)))
}

// drop removes the entry from the registry if it is still current and
// closes it. Used for dead or unwritable sessions.
func (d *Dispatcher) drop(guardianID int64, deviceID string, e *entry) {
	d.mu.Lock()
	if devices := d.sessions[guardianID]; devices != nil {
		if devices[deviceID] == e {
			delete(devices, deviceID)
			if len(devices) == 0 {
				delete(d.sessions, guardianID)
			}
		}
	}
	d.mu.Unlock()

	e.close()
}

// supervise probes the session on a fixed cadence and tears it down
// once the client has been silent past the idle timeout.
func (d *Dispatcher) supervise(guardianID int64, deviceID string, e *entry) {
	ticker := time.NewTicker(d.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			if e.idleFor() > d.idleTimeout {
				d.logger().Warn("Heartbeat timeout, closing session",
					zap.Int64("guardian_id", guardianID),
					zap.String("device_id", deviceID))
				d.drop(guardianID, deviceID, e)
				return
			}
			if err := e.session.SendPing(); err != nil {
				d.drop(guardianID, deviceID, e)
				return
			}
			if err := e.session.Send([]byte(HeartbeatText)); err != nil {
				d.drop(guardianID, deviceID, e)
				return
			}
		}
	}
}
