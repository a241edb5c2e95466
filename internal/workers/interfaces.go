// Package workers runs background jobs of the configuration server.
//
// It defines the Worker interface and a Workers aggregate that runs all
// configured workers until their context is cancelled.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}
