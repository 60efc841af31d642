// Package notify carries the one-at-a-time user notices emitted by every
// tracker operation.
package notify

import (
	"sync"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"

	log "github.com/sirupsen/logrus"
)

// Kind categorizes a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

// DefaultDuration is how long a notice stays visible unless told otherwise.
const DefaultDuration = 3 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	Message  string
	Kind     Kind
	Duration time.Duration
	At       time.Time
}

// ExpiresAt is the instant the notice stops being visible.
func (n Notification) ExpiresAt() time.Time {
	return n.At.Add(n.Duration)
}

// Notifier is what the trackers depend on.
type Notifier interface {
	Notify(kind Kind, message string)
	NotifyFor(kind Kind, message string, d time.Duration)
}

type subscriber struct {
	id uint64
	fn func(Notification)
}

// Center keeps only the latest notification; a new one displaces whatever
// is still showing. Subscribers run synchronously in registration order.
type Center struct {
	mu       sync.RWMutex
	clock    clock.Clock
	duration time.Duration
	current  *Notification
	subs     []subscriber
	nextID   uint64
}

// NewCenter creates a Center. A non-positive duration means DefaultDuration.
func NewCenter(c clock.Clock, duration time.Duration) *Center {
	if c == nil {
		c = clock.System{}
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Center{clock: c, duration: duration}
}

// SetDuration changes the default duration of later notifications.
func (c *Center) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	c.mu.Lock()
	c.duration = d
	c.mu.Unlock()
}

// Notify shows message for the default duration.
func (c *Center) Notify(kind Kind, message string) {
	c.mu.RLock()
	d := c.duration
	c.mu.RUnlock()
	c.NotifyFor(kind, message, d)
}

// NotifyFor shows message for d, replacing the current notice.
func (c *Center) NotifyFor(kind Kind, message string, d time.Duration) {
	if d <= 0 {
		c.mu.RLock()
		d = c.duration
		c.mu.RUnlock()
	}
	n := Notification{Message: message, Kind: kind, Duration: d, At: c.clock.Now()}

	c.mu.Lock()
	c.current = &n
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		deliver(s, n)
	}
}

func deliver(s subscriber, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("notify: subscriber %d panicked: %v", s.id, r)
		}
	}()
	s.fn(n)
}

// Subscribe registers fn for every future notification.
func (c *Center) Subscribe(fn func(Notification)) (unsubscribe func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Current returns the latest notification regardless of expiry.
func (c *Center) Current() (Notification, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// Visible returns the latest notification if it has not expired at now.
func (c *Center) Visible(now time.Time) (Notification, bool) {
	n, ok := c.Current()
	if !ok || !now.Before(n.ExpiresAt()) {
		return Notification{}, false
	}
	return n, true
}

// Dismiss hides the current notification.
func (c *Center) Dismiss() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// Recorder is a Notifier that remembers everything it was told.
type Recorder struct {
	Notes []Notification
}

func (r *Recorder) Notify(kind Kind, message string) {
	r.NotifyFor(kind, message, DefaultDuration)
}

func (r *Recorder) NotifyFor(kind Kind, message string, d time.Duration) {
	r.Notes = append(r.Notes, Notification{Message: message, Kind: kind, Duration: d})
}

// Last returns the most recent notification, or the zero value.
func (r *Recorder) Last() Notification {
	if len(r.Notes) == 0 {
		return Notification{}
	}
	return r.Notes[len(r.Notes)-1]
}
