package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects delivered values
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestNewDefaultsDelay(t *testing.T) {
	d := New(0, func(string) {})
	assert.Equal(t, DefaultDelay, d.Delay())
	assert.Equal(t, 600*time.Millisecond, DefaultDelay)
}

func TestCoalescesRapidTriggers(t *testing.T) {
	rec := &recorder{}
	d := New(50*time.Millisecond, rec.record)
	defer d.Stop()

	for _, v := range []string{"b", "ba", "bat", "batm", "batman"} {
		d.Trigger(v)
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"batman"}, rec.snapshot())
	assert.False(t, d.Pending())

	// Nothing else arrives later
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"batman"}, rec.snapshot())
}

func TestDeliversEachSettledValue(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Trigger("alien")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	d.Trigger("")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"alien", ""}, rec.snapshot())
}

func TestStopCancelsPending(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)

	d.Trigger("heat")
	d.Stop()
	assert.False(t, d.Pending())

	d.Trigger("ronin")

	assert.Never(t, func() bool {
		return len(rec.snapshot()) > 0
	}, 150*time.Millisecond, 10*time.Millisecond)
}

func TestStaleFireIsIgnored(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)
	defer d.Stop()

	d.Trigger("old")
	d.Trigger("new")

	// Simulate the first timer's callback running after being superseded
	d.fire(1, "old")
	assert.Empty(t, rec.snapshot())

	d.fire(2, "new")
	assert.Equal(t, []string{"new"}, rec.snapshot())
}
