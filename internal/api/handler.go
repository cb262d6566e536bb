package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hades1710/ThirdWave/internal/alert"
	"github.com/Hades1710/ThirdWave/internal/models"
	"github.com/Hades1710/ThirdWave/internal/repository"
)

// AlertSender is the orchestrator surface the HTTP layer needs.
type AlertSender interface {
	Send(ctx context.Context, req alert.Request) models.AlertOutcome
}

type Handler struct {
	alerts AlertSender
	repo   repository.AlertRepository
}

func NewHandler(alerts AlertSender, repo repository.AlertRepository) *Handler {
	return &Handler{
		alerts: alerts,
		repo:   repo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/notify/emergency", h.notifyEmergency)
	r.GET("/api/alerts", h.getAlerts)
	r.GET("/api/health", h.health)
}

type notifyRequest struct {
	User          models.User           `json:"user" binding:"required"`
	EmotionScore  float64               `json:"emotionScore"`
	Message       string                `json:"message"`
	Relationships []models.Relationship `json:"relationships"`
	PlainOnly     bool                  `json:"plainOnly"`
}

func (h *Handler) notifyEmergency(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "invalid request body",
		})
		return
	}
	if req.User.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "user.id is required",
		})
		return
	}

	outcome := h.alerts.Send(c.Request.Context(), alert.Request{
		User:      req.User,
		Score:     req.EmotionScore,
		Message:   req.Message,
		Roles:     req.Relationships,
		PlainOnly: req.PlainOnly,
	})

	if outcome.Delivered {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"outcome": outcome,
		})
		return
	}

	status := http.StatusBadGateway
	switch outcome.Reason {
	case models.ReasonNoEligibleContacts:
		status = http.StatusUnprocessableEntity
	case models.ReasonRateLimited:
		status = http.StatusTooManyRequests
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": string(outcome.Reason),
		"outcome": outcome,
	})
}

func (h *Handler) getAlerts(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // Default to 20 records if limit param not supplied
	}

	if u := c.Query("user_id"); u != "" {
		filter.UserID = u
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if d := c.Query("delivered"); d != "" {
		if b, err := strconv.ParseBool(d); err == nil {
			filter.Delivered = &b
		}
	}
	if ch := c.Query("channel"); ch != "" {
		channel := models.Channel(ch)
		switch channel {
		case models.ChannelRich, models.ChannelPlain, models.ChannelNone:
			filter.Channel = &channel
		}
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	records, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch alerts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": toAlertViews(records)})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type alertView struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Severity   string  `json:"severity,omitempty"`
	Channel    string  `json:"channel"`
	Delivered  bool    `json:"delivered"`
	Reason     string  `json:"reason,omitempty"`
	Score      float64 `json:"score"`
	Recipients int     `json:"recipients"`
	CreatedAt  string  `json:"createdAt"`
}

func toAlertViews(records []models.AlertRecord) []alertView {
	views := make([]alertView, 0, len(records))
	for _, rec := range records {
		views = append(views, alertView{
			ID:         rec.ID,
			UserID:     rec.UserID,
			Severity:   string(rec.Severity),
			Channel:    string(rec.Channel),
			Delivered:  rec.Delivered,
			Reason:     string(rec.Reason),
			Score:      rec.Score,
			Recipients: rec.Recipients,
			CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return views
}
