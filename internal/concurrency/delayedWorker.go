package concurrency

import (
	"context"
	"time"
)

type delayedJob[T any] struct {
	arg T
	due time.Time
}

// DelayedWorker runs jobs one at a time, in submission order, each no earlier than
// delay after it was submitted. Jobs still waiting when the context ends are dropped.
type DelayedWorker[T any] struct {
	delay       time.Duration
	jobCallback func(arg T)
	jobs        chan delayedJob[T]
}

func NewDelayedWorker[T any](delay time.Duration, queueSize int, jobCallback func(arg T)) *DelayedWorker[T] {
	return &DelayedWorker[T]{
		delay:       delay,
		jobCallback: jobCallback,
		jobs:        make(chan delayedJob[T], queueSize),
	}
}

// Submit queues a job without blocking, returning false if the queue is full.
func (w *DelayedWorker[T]) Submit(arg T) bool {
	select {
	case w.jobs <- delayedJob[T]{arg: arg, due: time.Now().Add(w.delay)}:
		return true
	default:
		return false
	}
}

func (w *DelayedWorker[T]) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			if !sleepUntil(ctx, job.due) {
				return
			}
			w.jobCallback(job.arg)
		}
	}
}

func sleepUntil(ctx context.Context, due time.Time) bool {
	wait := time.Until(due)
	if wait <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
