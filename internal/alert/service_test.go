package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
	"github.com/Hades1710/ThirdWave/internal/ratelimit"
)

type fixture struct {
	rich    *fakeRich
	plain   *fakePlain
	limiter *ratelimit.Window
	clock   *fakeClock
	svc     *Service
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFixture() *fixture {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	rich := &fakeRich{}
	plain := &fakePlain{}
	limiter := ratelimit.NewWindow(5, time.Hour).WithClock(clock.Now)

	svc := NewService(NewDispatcher(rich, plain, true), limiter, nil, nil)
	svc.now = clock.Now

	return &fixture{rich: rich, plain: plain, limiter: limiter, clock: clock, svc: svc}
}

// Scenario: score 95 with a counselor and a friend on file, default roles.
// Only the counselor is notified and the tier is CRITICAL.
func TestService_DefaultRolesAndSeverity(t *testing.T) {
	f := newFixture()

	user := models.User{
		ID:   "user-1",
		Name: "John Doe",
		Contacts: []models.Contact{
			{Email: "c@x.com", Relationship: models.RelationshipCounselor},
			{Email: "f@x.com", Relationship: models.RelationshipFriend},
		},
	}

	out := f.svc.Send(context.Background(), Request{User: user, Score: 95, Message: "help"})

	if !out.Delivered || out.Channel != models.ChannelRich {
		t.Fatalf("expected rich delivery, got %+v", out)
	}
	if out.Severity != models.SeverityCritical {
		t.Errorf("expected severity CRITICAL, got %s", out.Severity)
	}
	if len(f.rich.lastUser.Contacts) != 1 || f.rich.lastUser.Contacts[0].Email != "c@x.com" {
		t.Errorf("expected only c@x.com notified, got %+v", f.rich.lastUser.Contacts)
	}
}

// Scenario: nobody has an address. No network call, no rate-limit slot burned.
func TestService_NoEligibleContacts(t *testing.T) {
	f := newFixture()

	user := models.User{
		ID:   "user-1",
		Name: "John Doe",
		Contacts: []models.Contact{
			{Email: "", Relationship: models.RelationshipCounselor},
			{Email: "  ", Relationship: models.RelationshipParent},
		},
	}

	out := f.svc.Send(context.Background(), Request{User: user, Score: 90, Message: "help"})

	if out.Delivered {
		t.Fatal("expected delivery failure")
	}
	if out.Reason != models.ReasonNoEligibleContacts {
		t.Errorf("expected reason %s, got %s", models.ReasonNoEligibleContacts, out.Reason)
	}
	if f.rich.calls != 0 || f.plain.calls != 0 {
		t.Error("no channel may be invoked without eligible contacts")
	}
	if got := f.limiter.Remaining("user-1"); got != 5 {
		t.Errorf("rate-limit slot consumed, %d remaining", got)
	}
	if len(out.MissingRoles) != 2 {
		t.Errorf("expected both requested roles reported missing, got %v", out.MissingRoles)
	}
}

// Scenario: rich channel errors, plain channel succeeds.
func TestService_FallsBackToPlain(t *testing.T) {
	f := newFixture()
	f.rich.err = errors.New("network error")

	out := f.svc.Send(context.Background(), Request{User: testUser(), Score: 75, Message: "help"})

	if !out.Delivered || out.Channel != models.ChannelPlain {
		t.Fatalf("expected plain fallback, got %+v", out)
	}
	if out.Severity != models.SeverityElevated {
		t.Errorf("expected severity ELEVATED, got %s", out.Severity)
	}
}

// Scenario: 6 calls inside one window: 1-5 dispatch, 6 is rate limited.
// After the window elapses the next call goes through again.
func TestService_RateLimiting(t *testing.T) {
	f := newFixture()
	user := testUser()

	for i := 1; i <= 5; i++ {
		out := f.svc.Send(context.Background(), Request{User: user, Score: 80, Message: "help"})
		if !out.Delivered {
			t.Fatalf("call %d: expected delivery, got %+v", i, out)
		}
	}

	out := f.svc.Send(context.Background(), Request{User: user, Score: 80, Message: "help"})
	if out.Delivered || out.Reason != models.ReasonRateLimited {
		t.Fatalf("call 6: expected RATE_LIMITED, got %+v", out)
	}
	if f.rich.calls != 5 {
		t.Errorf("expected 5 dispatch attempts, got %d", f.rich.calls)
	}

	f.clock.Advance(time.Hour)

	out = f.svc.Send(context.Background(), Request{User: user, Score: 80, Message: "help"})
	if !out.Delivered {
		t.Fatalf("post-window call: expected delivery, got %+v", out)
	}
}

func TestService_RateLimitIsPerUser(t *testing.T) {
	f := newFixture()

	other := testUser()
	other.ID = "user-2"

	for i := 0; i < 5; i++ {
		f.svc.Send(context.Background(), Request{User: testUser(), Score: 80, Message: "help"})
	}

	out := f.svc.Send(context.Background(), Request{User: other, Score: 80, Message: "help"})
	if !out.Delivered {
		t.Fatalf("different user must not share the window, got %+v", out)
	}
}

func TestService_ExplicitRoles(t *testing.T) {
	f := newFixture()

	out := f.svc.Send(context.Background(), Request{
		User:    testUser(),
		Score:   85,
		Message: "help",
		Roles:   []models.Relationship{models.RelationshipFriend},
	})

	if !out.Delivered {
		t.Fatalf("expected delivery, got %+v", out)
	}
	if len(f.rich.lastUser.Contacts) != 1 || f.rich.lastUser.Contacts[0].Email != "f@x.com" {
		t.Errorf("expected only the friend notified, got %+v", f.rich.lastUser.Contacts)
	}
	if len(f.rich.lastRoles) != 1 || f.rich.lastRoles[0] != models.RelationshipFriend {
		t.Errorf("expected requested roles forwarded, got %v", f.rich.lastRoles)
	}
}
