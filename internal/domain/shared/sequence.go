// Package shared holds ports used by more than one bounded context.
package shared

import "context"

// SequenceAllocator hands out strictly increasing numbers per named counter.
// Implementations must be safe for concurrent callers and must join the
// transaction carried by ctx, so that a rolled-back creation does not consume
// a number.
type SequenceAllocator interface {
	// Next returns the next value of counter name. seed is called only when the
	// counter does not exist yet and returns the highest value already in use.
	Next(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error)
}
