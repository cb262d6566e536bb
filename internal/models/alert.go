package models

import "time"

type Severity string

const (
	SeverityElevated Severity = "ELEVATED"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type Channel string

const (
	ChannelRich  Channel = "rich"
	ChannelPlain Channel = "plain"
	ChannelNone  Channel = "none"
)

// Reason explains a non-delivered (or degraded) outcome.
type Reason string

const (
	ReasonNoEligibleContacts  Reason = "NO_ELIGIBLE_CONTACTS"
	ReasonRateLimited         Reason = "RATE_LIMITED"
	ReasonRichChannelFailure  Reason = "RICH_CHANNEL_FAILURE"
	ReasonPlainChannelFailure Reason = "PLAIN_CHANNEL_FAILURE"
)

// DistressEvent is the ephemeral trigger for a single alert. Created once per
// orchestrator invocation and consumed synchronously.
type DistressEvent struct {
	UserID    string    `json:"userId"`
	Score     float64   `json:"score"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertOutcome is what the orchestrator hands back to its caller.
type AlertOutcome struct {
	Delivered bool     `json:"delivered"`
	Channel   Channel  `json:"channel"`
	Severity  Severity `json:"severity,omitempty"`
	Reason    Reason   `json:"reason,omitempty"`
	// Recipients are the addresses the delivering channel was given.
	Recipients []string `json:"recipients,omitempty"`
	// MissingRoles are requested roles that had no eligible contact on file,
	// e.g. to warn "no counselor contact configured".
	MissingRoles []Relationship `json:"missingRoles,omitempty"`
}

// AlertRecord is the persisted trace of one dispatch attempt, delivered or not.
type AlertRecord struct {
	ID         string
	UserID     string
	Severity   Severity
	Channel    Channel
	Delivered  bool
	Reason     Reason
	Score      float64
	Recipients int
	CreatedAt  time.Time
}
