// Package resource limits the two resources a benchmark session consumes.
//
//   - Memory: an optional hard budget for off-heap arena chunks (fail-fast)
//   - Launches: an optional token bucket pacing benchmark subprocess starts
//
// # Memory
//
// Memory tracking uses a weighted semaphore for the hard limit and an atomic
// counter for usage. AcquireMemory never blocks; it returns
// ErrMemoryLimitExceeded if the budget would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//
//	if err := rc.AcquireMemory(ctx, 1<<20); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(1 << 20)
//
// # Launch pacing
//
//	rc := resource.NewController(resource.Config{
//	    LaunchesPerSecond: 2,
//	})
//
//	if err := rc.WaitLaunch(ctx); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
package resource
