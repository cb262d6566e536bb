package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Hades1710/ThirdWave/internal/events"
	"github.com/Hades1710/ThirdWave/internal/models"
)

// RateLimiter admits or rejects a dispatch attempt for a user. Implementations
// must serialize concurrent checks for the same key.
type RateLimiter interface {
	Allow(userID string) bool
}

// Request is one emergency-alert invocation from the distress-scoring caller.
type Request struct {
	User    models.User
	Score   float64
	Message string
	// Roles defaults to the configured highest-trust relationships when empty.
	Roles []models.Relationship
	// PlainOnly skips the rich channel; the zero value prefers it.
	PlainOnly bool
}

// Service is the alert orchestrator: filter contacts, check the rate limit,
// classify severity, dispatch, publish the outcome.
type Service struct {
	dispatcher   *Dispatcher
	limiter      RateLimiter
	defaultRoles []models.Relationship
	bus          *events.Broadcaster
	now          func() time.Time
}

func NewService(dispatcher *Dispatcher, limiter RateLimiter, defaultRoles []models.Relationship, bus *events.Broadcaster) *Service {
	if len(defaultRoles) == 0 {
		defaultRoles = models.DefaultRelationships()
	}
	return &Service{
		dispatcher:   dispatcher,
		limiter:      limiter,
		defaultRoles: defaultRoles,
		bus:          bus,
		now:          time.Now,
	}
}

// Send runs one alert end to end and always returns an outcome; no error from
// the channels escapes this contract. Contacts are filtered before the rate
// limiter runs, so an alert with nobody to tell never consumes a slot.
func (s *Service) Send(ctx context.Context, req Request) models.AlertOutcome {
	roles := req.Roles
	if len(roles) == 0 {
		roles = s.defaultRoles
	}

	eligible := FilterContacts(req.User.Contacts, roles)
	missing := MissingRoles(req.User.Contacts, roles)

	if len(eligible) == 0 {
		slog.Warn("no eligible emergency contacts", "user_id", req.User.ID, "roles", roles)
		out := models.AlertOutcome{
			Channel:      models.ChannelNone,
			Reason:       models.ReasonNoEligibleContacts,
			MissingRoles: missing,
		}
		s.publish(req, out)
		return out
	}

	if !s.limiter.Allow(req.User.ID) {
		slog.Warn("alert suppressed by rate limit", "user_id", req.User.ID)
		out := models.AlertOutcome{
			Channel:      models.ChannelNone,
			Reason:       models.ReasonRateLimited,
			MissingRoles: missing,
		}
		s.publish(req, out)
		return out
	}

	severity := Classify(req.Score)
	event := models.DistressEvent{
		UserID:    req.User.ID,
		Score:     req.Score,
		Message:   req.Message,
		Timestamp: s.now(),
	}

	out := s.dispatcher.Dispatch(ctx, req.User, eligible, severity, event, roles, !req.PlainOnly)
	out.MissingRoles = missing

	if out.Delivered {
		slog.Info("emergency alert delivered",
			"user_id", req.User.ID, "severity", severity, "channel", out.Channel, "recipients", len(out.Recipients))
	}

	s.publish(req, out)
	return out
}

func (s *Service) publish(req Request, out models.AlertOutcome) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(&models.AlertRecord{
		ID:         uuid.NewString(),
		UserID:     req.User.ID,
		Severity:   out.Severity,
		Channel:    out.Channel,
		Delivered:  out.Delivered,
		Reason:     out.Reason,
		Score:      req.Score,
		Recipients: len(out.Recipients),
		CreatedAt:  s.now(),
	})
}
