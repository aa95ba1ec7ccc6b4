package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate"
	"github.com/talentsift/screening/screening/candidate/candidatesrv"
)

const (
	dequeueTimeout   = 5 * time.Second
	delayedScanEvery = 30 * time.Second
)

// IntakeWorker drains the resume intake queue with a pool of
// goroutines and promotes delayed retries back to the ready queue.
type IntakeWorker struct {
	service *candidatesrv.Service
	queue   candidate.IntakeQueue
	workers int
}

func NewIntakeWorker(service *candidatesrv.Service, queue candidate.IntakeQueue, workers int) *IntakeWorker {
	if workers < 1 {
		workers = 1
	}
	return &IntakeWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

// Start launches the worker pool. Workers stop when ctx is cancelled.
func (w *IntakeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d intake workers", w.workers)

	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *IntakeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Intake worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Intake worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Intake worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Timeout with no jobs available
			if len(data) == 0 {
				continue
			}

			var job candidate.IntakeJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Intake worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Intake worker %d processing job: %s", workerID, job.ID)
			if err := w.service.ProcessIntakeJob(ctx, &job); err != nil {
				logx.Errorf("Intake worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *IntakeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(delayedScanEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed intake jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed intake jobs to ready queue", count)
			}
		}
	}
}
