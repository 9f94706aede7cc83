package keybinding

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runner starts fire-and-forget tasks and lets teardown wait for them.
type runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	sem    chan struct{}
}

func newRunner(limit int) *runner {
	ctx, cancel := context.WithCancel(context.Background())
	r := &runner{ctx: ctx, cancel: cancel}
	if limit > 0 {
		r.sem = make(chan struct{}, limit)
	}
	return r
}

// Go starts task without blocking. When the limit is reached the task waits
// for a free slot on its own goroutine; tasks still waiting at shutdown are
// skipped.
func (r *runner) Go(task func(ctx context.Context) error) {
	r.group.Go(func() error {
		if r.sem != nil {
			select {
			case r.sem <- struct{}{}:
				defer func() { <-r.sem }()
			case <-r.ctx.Done():
				return nil
			}
		}
		return task(r.ctx)
	})
}

// Wait blocks until every started task has returned and reports the first
// task error.
func (r *runner) Wait() error {
	return r.group.Wait()
}

// Close cancels the task context and waits for running tasks.
func (r *runner) Close() error {
	r.cancel()
	return r.group.Wait()
}
