// Package pipeio pumps bytes between two endpoints until either side ends.
package pipeio

import (
	"fmt"
	"io"
	"sync"
)

// Pipe copies in both directions between rwc1 and rwc2 and blocks until one
// direction ends, then closes both endpoints exactly once. Copy errors are
// reported through logfunc and do not interrupt the other direction beyond
// the close.
func Pipe(rwc1 io.ReadWriteCloser, rwc2 io.ReadWriteCloser, logfunc func(error)) {
	var wg sync.WaitGroup
	var o sync.Once

	close := func() {
		rwc1.Close()
		rwc2.Close()

		wg.Done()
	}
	wg.Add(1)

	go func() {
		if _, err := io.Copy(rwc1, rwc2); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc1, rwc2): %w", err))
		}
		o.Do(close)
	}()

	go func() {
		if _, err := io.Copy(rwc2, rwc1); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc2, rwc1): %w", err))
		}
		o.Do(close)
	}()

	wg.Wait()
}
