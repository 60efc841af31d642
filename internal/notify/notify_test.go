package notify

import (
	"testing"
	"time"

	"github.com/theirongolddev/planbook/internal/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCenter() (*Center, *clock.Fixed) {
	clk := &clock.Fixed{T: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)}
	return NewCenter(clk, 0), clk
}

func TestNewNoticeDisplacesOld(t *testing.T) {
	c, _ := newTestCenter()
	c.Notify(Success, "first")
	c.NotifyFor(Info, "second", 5*time.Second)

	n, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "second", n.Message)
	assert.Equal(t, Info, n.Kind)
	assert.Equal(t, 5*time.Second, n.Duration)
}

func TestVisibleExpires(t *testing.T) {
	c, clk := newTestCenter()
	c.Notify(Error, "nope")

	_, ok := c.Visible(clk.Now().Add(2 * time.Second))
	assert.True(t, ok)
	_, ok = c.Visible(clk.Now().Add(DefaultDuration))
	assert.False(t, ok)
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	c, _ := newTestCenter()
	var got []string
	unsubA := c.Subscribe(func(n Notification) { got = append(got, "a:"+n.Message) })
	c.Subscribe(func(n Notification) { got = append(got, "b:"+n.Message) })

	c.Notify(Success, "x")
	unsubA()
	c.Notify(Success, "y")

	assert.Equal(t, []string{"a:x", "b:x", "b:y"}, got)
}

func TestPanickingSubscriberDoesNotStopOthers(t *testing.T) {
	c, _ := newTestCenter()
	called := false
	c.Subscribe(func(Notification) { panic("boom") })
	c.Subscribe(func(Notification) { called = true })

	c.Notify(Warning, "careful")
	assert.True(t, called)
}

func TestDismiss(t *testing.T) {
	c, _ := newTestCenter()
	c.Notify(Info, "hello")
	c.Dismiss()
	_, ok := c.Current()
	assert.False(t, ok)
}
