// Package async runs blocking calls concurrently.
package async

// Errable runs fn in its own goroutine. The returned channel receives fn's
// error once and is then closed.
func Errable(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// WaitAll waits for all the given errables to finish, and returns the error
// of the first errable in argument order that failed, if any.
func WaitAll(chans ...<-chan error) error {
	var first error
	for _, ch := range chans {
		if err := <-ch; err != nil && first == nil {
			first = err
		}
	}
	return first
}
