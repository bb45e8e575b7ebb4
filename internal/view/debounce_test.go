package view

import (
	"sort"
	"testing"
	"time"
)

// simulate replays event times (offsets from zero) against a debouncer, the
// way an event loop would: every event schedules a wake-up delay later, and
// wake-ups are delivered in time order, interleaved with later events.
func simulate(d *Debouncer, events []time.Duration) []time.Duration {
	type wake struct {
		at  time.Duration
		tok Token
	}
	type step struct {
		at    time.Duration
		event bool
		tok   Token
	}
	var steps []step
	for _, e := range events {
		steps = append(steps, step{at: e, event: true})
	}
	var fired []time.Duration
	var wakes []wake
	sort.Slice(steps, func(i, j int) bool { return steps[i].at < steps[j].at })
	for len(steps) > 0 || len(wakes) > 0 {
		if len(wakes) > 0 && (len(steps) == 0 || wakes[0].at < steps[0].at) {
			w := wakes[0]
			wakes = wakes[1:]
			if d.Fire(w.tok) {
				fired = append(fired, w.at)
			}
			continue
		}
		s := steps[0]
		steps = steps[1:]
		tok := d.Touch()
		wakes = append(wakes, wake{at: s.at + d.Delay(), tok: tok})
		sort.Slice(wakes, func(i, j int) bool { return wakes[i].at < wakes[j].at })
	}
	return fired
}

func TestDebounceCoalescesBurst(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	burst := []time.Duration{0, 20 * time.Millisecond, 45 * time.Millisecond, 70 * time.Millisecond, 95 * time.Millisecond}
	fired := simulate(d, burst)
	if len(fired) != 1 {
		t.Fatalf("fired %d times, want 1", len(fired))
	}
	if want := 195 * time.Millisecond; fired[0] != want {
		t.Errorf("fired at %v, want %v", fired[0], want)
	}
	if d.Pending() {
		t.Error("Pending() = true after fire")
	}
}

func TestDebounceIsolatedEvents(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	fired := simulate(d, []time.Duration{0, 250 * time.Millisecond, 600 * time.Millisecond})
	want := []time.Duration{100 * time.Millisecond, 350 * time.Millisecond, 700 * time.Millisecond}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %v, want %v", i, fired[i], want[i])
		}
	}
}

func TestDebounceCancel(t *testing.T) {
	d := NewDebouncer(0)
	if d.Delay() != DefaultDebounce {
		t.Errorf("Delay() = %v, want %v", d.Delay(), DefaultDebounce)
	}
	tok := d.Touch()
	d.Cancel()
	if d.Fire(tok) {
		t.Error("Fire() after Cancel() = true")
	}
	tok = d.Touch()
	if !d.Fire(tok) {
		t.Error("Fire() = false for latest token")
	}
	if d.Fire(tok) {
		t.Error("Fire() twice = true")
	}
}
