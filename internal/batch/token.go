package batch

import "sync"

// Token is the shared cancellation flag of one batch. Signal is idempotent
// and safe from any goroutine; there is no reset, one token per batch.
type Token struct {
	once sync.Once
	done chan struct{}
}

// NewToken creates an unsignaled token
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Signal requests cancellation. Repeated calls are no-ops.
func (t *Token) Signal() {
	t.once.Do(func() {
		close(t.done)
	})
}

// Signaled reports whether cancellation has been requested
func (t *Token) Signaled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once cancellation is requested,
// for select-based waits
func (t *Token) Done() <-chan struct{} {
	return t.done
}
