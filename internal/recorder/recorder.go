// Package recorder persists alert records published on the event bus, keeping
// storage latency off the dispatch path.
package recorder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Hades1710/ThirdWave/internal/events"
	"github.com/Hades1710/ThirdWave/internal/models"
	"github.com/Hades1710/ThirdWave/internal/repository"
	"github.com/Hades1710/ThirdWave/internal/worker"
)

type Recorder struct {
	bus   *events.Broadcaster
	repo  repository.AlertRepository
	pool  *worker.Pool
	subID uint64
	ch    chan *models.AlertRecord
	wg    sync.WaitGroup
}

func New(bus *events.Broadcaster, repo repository.AlertRepository, workers, bufferSize int) *Recorder {
	r := &Recorder{
		bus:  bus,
		repo: repo,
	}
	r.pool = worker.NewPool(workers, bufferSize, r.process)
	return r
}

func (r *Recorder) process(ctx context.Context, rec *models.AlertRecord) error {
	if err := r.repo.Add(ctx, rec); err != nil {
		slog.Error("error recording alert", "id", rec.ID, "user_id", rec.UserID, "error", err)
		return err
	}
	slog.Debug("alert recorded", "id", rec.ID, "user_id", rec.UserID, "delivered", rec.Delivered)
	return nil
}

func (r *Recorder) Start(ctx context.Context) {
	r.pool.Start(ctx)
	r.subID, r.ch = r.bus.Subscribe()

	r.wg.Add(1)
	go r.drain(ctx)
}

func (r *Recorder) drain(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-r.ch:
			if !ok {
				return
			}
			if !r.pool.TrySubmit(rec) {
				slog.Warn("alert record dropped, recorder backlog full", "id", rec.ID)
			}
		}
	}
}

func (r *Recorder) Stop() {
	r.bus.Unsubscribe(r.subID)
	r.wg.Wait()
	r.pool.Stop()
	slog.Info("alert recorder stopped")
}
