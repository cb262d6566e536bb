package alert

import (
	"strings"
	"testing"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

func testEvent(message string) models.DistressEvent {
	return models.DistressEvent{
		UserID:    "user-1",
		Score:     85,
		Message:   message,
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestBuildEmail_Content(t *testing.T) {
	user := models.User{ID: "user-1", Name: "John Doe"}
	contact := models.Contact{Email: "c@x.com", Relationship: models.RelationshipCounselor}
	event := testEvent("I'm feeling really overwhelmed")

	email, err := BuildEmail(user, models.SeverityHigh, event, contact)
	if err != nil {
		t.Fatalf("BuildEmail failed: %v", err)
	}

	if email.Subject != "🚨 HIGH ALERT: Emotional Support Needed for John Doe" {
		t.Errorf("unexpected subject: %s", email.Subject)
	}

	for _, want := range []string{
		"HIGH",
		"85/100",
		"2026-03-14T09:30:00Z",
		"John Doe",
		"Counselor",
		"988",
		"741741",
	} {
		if !strings.Contains(email.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if !strings.Contains(email.Body, "overwhelmed") {
		t.Error("body missing the triggering message")
	}
}

func TestBuildEmail_Deterministic(t *testing.T) {
	user := models.User{ID: "user-1", Name: "John Doe"}
	contact := models.Contact{Email: "c@x.com", Relationship: models.RelationshipParent}
	event := testEvent("same input")

	first, err := BuildEmail(user, models.SeverityCritical, event, contact)
	if err != nil {
		t.Fatalf("BuildEmail failed: %v", err)
	}
	second, err := BuildEmail(user, models.SeverityCritical, event, contact)
	if err != nil {
		t.Fatalf("BuildEmail failed: %v", err)
	}

	if first.Subject != second.Subject || first.Body != second.Body {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestBuildEmail_EscapesUserInput(t *testing.T) {
	user := models.User{ID: "user-1", Name: "<b>Bold</b>"}
	contact := models.Contact{Email: "c@x.com", Relationship: models.RelationshipCounselor}
	event := testEvent(`<script>alert("xss")</script>`)

	email, err := BuildEmail(user, models.SeverityElevated, event, contact)
	if err != nil {
		t.Fatalf("BuildEmail failed: %v", err)
	}

	if strings.Contains(email.Body, "<script>") {
		t.Error("triggering message was embedded without escaping")
	}
	if !strings.Contains(email.Body, "&lt;script&gt;") {
		t.Error("expected escaped message text in body")
	}
	if strings.Contains(email.Body, "<b>Bold</b>") {
		t.Error("user name was embedded without escaping")
	}
}
