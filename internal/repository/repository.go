package repository

import (
	"context"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type Filter struct {
	Limit     int
	Offset    int
	UserID    string
	Since     *time.Time
	Delivered *bool
	Channel   *models.Channel
}

// AlertRepository stores the history of dispatch attempts. It is written off
// the dispatch path and never consulted by it.
type AlertRepository interface {
	Add(ctx context.Context, rec *models.AlertRecord) error
	GetByID(ctx context.Context, id string) (*models.AlertRecord, error)
	List(ctx context.Context, opts Filter) ([]models.AlertRecord, error)
}
