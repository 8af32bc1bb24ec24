package eggmatch

// FrameScheduler defers a visual write to the next paint. Callers never read
// back from the deferred work: control flow always uses the logical state.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is the scheduler the host drains once per paint. Callbacks
// requested while a flush is running are kept for the following flush, the
// same way animation-frame callbacks behave in a browser.
type FrameQueue struct {
	pending []func()
	running []func()
}

// RequestFrame implements FrameScheduler.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of callbacks waiting for the next flush.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// Flush runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Flush() int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		fn()
		q.running[i] = nil
	}
	n := len(q.running)
	q.running = q.running[:0]
	return n
}

// ImmediateFrames runs every request synchronously. Useful for hosts without
// a paint loop and for tests that do not care about deferral.
type ImmediateFrames struct{}

// RequestFrame implements FrameScheduler.
func (ImmediateFrames) RequestFrame(fn func()) { fn() }
