package achievements

import (
	"context"
	"log"
)

// Worker decouples aggregate recomputation from the hike write that triggered
// it. Jobs are user ids; a full queue drops the job (the next mutation will
// recompute the same state) and failures surface on the error channel for
// logging, never back to the caller.
type Worker struct {
	recomputer *Recomputer
	jobs       chan string
	errs       chan error
	done       chan struct{}
}

func NewWorker(recomputer *Recomputer, buffer int) *Worker {
	if buffer <= 0 {
		buffer = 64
	}
	return &Worker{
		recomputer: recomputer,
		jobs:       make(chan string, buffer),
		errs:       make(chan error, buffer),
		done:       make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case userID := <-w.jobs:
				if err := w.recomputer.Recompute(ctx, userID); err != nil {
					log.Printf("achievements recompute for %s failed: %v", userID, err)
					select {
					case w.errs <- err:
					default:
					}
				}
			}
		}
	}()
}

// Enqueue schedules a recompute for userID without blocking.
func (w *Worker) Enqueue(userID string) {
	select {
	case w.jobs <- userID:
	default:
		log.Printf("achievements queue full, dropping recompute for %s", userID)
	}
}

func (w *Worker) Errors() <-chan error {
	return w.errs
}

// Wait blocks until the worker loop has exited after context cancellation.
func (w *Worker) Wait() {
	<-w.done
}
