package task

// Handle represents an in-flight or completed task.
type Handle[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done returns a channel that is closed when the task completes.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

// Wait blocks until the task completes and returns its result. A non-nil
// error wraps ErrWorker. Wait may be called any number of times; every
// call returns the same stored result.
func (h *Handle[T]) Wait() (T, error) {
	<-h.done
	return h.val, h.err
}
