// Package notify is the transient notification center. Notifications are
// fire-and-forget: each one times out independently and several may be live
// at once. Stores emit exactly one notification per mutating outcome; silent
// reads never notify.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultDuration is how long a notification stays visible unless dismissed.
const DefaultDuration = 3 * time.Second

// Notification is one transient message.
type Notification struct {
	ID       string
	Kind     Kind
	Message  string
	Duration time.Duration
	PushedAt time.Time
}

// Center owns the live notifications and their dismiss timers.
type Center struct {
	mu       sync.Mutex
	active   []Notification
	timers   map[string]*time.Timer
	subs     []func(Notification)
	duration time.Duration
	nowTime  func() time.Time
}

// CenterOption configures the Center.
type CenterOption func(*Center)

// WithDuration overrides the default auto-dismiss duration.
func WithDuration(d time.Duration) CenterOption {
	return func(c *Center) { c.duration = d }
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CenterOption {
	return func(c *Center) { c.nowTime = nowFunc }
}

// NewCenter creates an empty notification center.
func NewCenter(opts ...CenterOption) *Center {
	c := &Center{
		timers:   make(map[string]*time.Timer),
		duration: DefaultDuration,
		nowTime:  time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Subscribe registers fn to be called for every pushed notification.
func (c *Center) Subscribe(fn func(Notification)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Success pushes a success notification.
func (c *Center) Success(message string) string { return c.Push(KindSuccess, message) }

// Error pushes an error notification.
func (c *Center) Error(message string) string { return c.Push(KindError, message) }

// Info pushes an info notification.
func (c *Center) Info(message string) string { return c.Push(KindInfo, message) }

// Warning pushes a warning notification.
func (c *Center) Warning(message string) string { return c.Push(KindWarning, message) }

// Push adds a notification and arms its dismiss timer, returning its id.
func (c *Center) Push(kind Kind, message string) string {
	c.mu.Lock()
	n := Notification{
		ID:       uuid.New().String(),
		Kind:     kind,
		Message:  message,
		Duration: c.duration,
		PushedAt: c.nowTime(),
	}
	c.active = append(c.active, n)
	c.timers[n.ID] = time.AfterFunc(n.Duration, func() { c.Dismiss(n.ID) })
	subs := make([]func(Notification), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n.ID
}

// Dismiss removes a notification before (or at) its timeout. Unknown ids are
// a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Active returns the live notifications in push order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close stops all pending dismiss timers and drops the live notifications.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	c.active = nil
}
