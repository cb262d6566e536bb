package worker

import (
	"context"
	"sync"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type ProcessFunc func(ctx context.Context, rec *models.AlertRecord) error

// Pool drains alert records through a fixed set of workers so persistence
// never runs on the dispatch path.
type Pool struct {
	numWorkers int
	jobs       chan *models.AlertRecord
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.AlertRecord, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, rec)
		}
	}
}

// TrySubmit enqueues a record, reporting false instead of blocking when the
// buffer is full.
func (p *Pool) TrySubmit(rec *models.AlertRecord) bool {
	select {
	case p.jobs <- rec:
		return true
	default:
		return false
	}
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
