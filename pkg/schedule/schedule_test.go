package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_AfterFiresOnce(t *testing.T) {
	m := NewManual()
	fired := 0
	m.After(5*time.Second, func() { fired++ })

	m.Advance(4 * time.Second)
	assert.Equal(t, 0, fired)
	m.Advance(time.Second)
	assert.Equal(t, 1, fired)
	m.Advance(time.Minute)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_EveryAndCancel(t *testing.T) {
	m := NewManual()
	ticks := 0
	h := m.Every(time.Second, func() { ticks++ })

	m.Advance(3500 * time.Millisecond)
	assert.Equal(t, 3, ticks)

	h.Cancel()
	h.Cancel()
	m.Advance(10 * time.Second)
	assert.Equal(t, 3, ticks)
}

func TestManual_OrderAndNesting(t *testing.T) {
	m := NewManual()
	var order []string

	m.After(2*time.Second, func() { order = append(order, "b") })
	m.After(time.Second, func() {
		order = append(order, "a")
		m.After(500*time.Millisecond, func() { order = append(order, "a2") })
	})
	m.After(2*time.Second, func() { order = append(order, "c") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, order)
	assert.Equal(t, 2*time.Second, m.Now())
}

func TestManual_CancelFromCallback(t *testing.T) {
	m := NewManual()
	ticks := 0
	var h Handle
	h = m.Every(time.Second, func() {
		ticks++
		if ticks == 2 {
			h.Cancel()
		}
	})
	m.Advance(10 * time.Second)
	assert.Equal(t, 2, ticks)
}

func TestClock_AfterAndEvery(t *testing.T) {
	c := NewClock(1)

	done := make(chan struct{})
	c.After(10*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("After did not fire")
	}

	var ticks atomic.Int32
	h := c.Every(5*time.Millisecond, func() { ticks.Add(1) })
	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)
	h.Cancel()
	h.Cancel()
}

func TestClock_CancelAfter(t *testing.T) {
	c := NewClock(1)
	var fired atomic.Bool
	h := c.After(20*time.Millisecond, func() { fired.Store(true) })
	h.Cancel()
	time.Sleep(40 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestClock_Scale(t *testing.T) {
	c := NewClock(10)
	assert.Equal(t, 100*time.Millisecond, c.scaled(time.Second))
	assert.Equal(t, time.Second, NewClock(0).scaled(time.Second))
}

func TestGroup_CancelAll(t *testing.T) {
	m := NewManual()
	var g Group
	fired := 0
	g.Add(m.After(time.Second, func() { fired++ }))
	g.Add(m.Every(time.Second, func() { fired++ }))

	g.CancelAll()
	m.Advance(5 * time.Second)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 0, m.Pending())
}
