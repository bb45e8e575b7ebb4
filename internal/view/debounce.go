package view

import "time"

// DefaultDebounce is the quiet period before a coalesced extent reset runs.
const DefaultDebounce = 100 * time.Millisecond

// Token identifies one scheduled reset. Only the most recent token can fire.
type Token uint64

// Debouncer coalesces bursts of events into a single deferred action.
//
// It holds no timer of its own: the owning event loop schedules a wake-up
// for Delay() after each Touch and hands the token back to Fire. Every Touch
// supersedes earlier tokens, so at most one reset is pending at a time.
type Debouncer struct {
	delay   time.Duration
	seq     Token
	pending bool
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Touch cancels any pending action and starts a new quiet period.
func (d *Debouncer) Touch() Token {
	d.seq++
	d.pending = true
	return d.seq
}

// Fire reports whether tok is the latest token and still pending. A true
// result consumes the pending action.
func (d *Debouncer) Fire(tok Token) bool {
	if !d.pending || tok != d.seq {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops the pending action, if any.
func (d *Debouncer) Cancel() { d.pending = false }

// Pending reports whether an action is waiting for its quiet period to end.
func (d *Debouncer) Pending() bool { return d.pending }
