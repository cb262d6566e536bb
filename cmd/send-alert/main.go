package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Hades1710/ThirdWave/internal/alert"
	"github.com/Hades1710/ThirdWave/internal/channel"
	"github.com/Hades1710/ThirdWave/internal/config"
	"github.com/Hades1710/ThirdWave/internal/logging"
	"github.com/Hades1710/ThirdWave/internal/models"
	"github.com/Hades1710/ThirdWave/internal/ratelimit"
)

// One-shot alert sender: reads a user document, runs a single dispatch, prints
// the outcome. Exit status 1 when nothing was delivered.
func main() {
	var (
		userArg   = flag.String("user", "", "JSON string or file path with user data")
		score     = flag.Float64("score", 0, "emotional distress score (0-100)")
		message   = flag.String("message", "", "message that triggered the alert")
		roles     = flag.String("roles", "", "comma-separated relationships to notify (default: counselor,parent)")
		plainOnly = flag.Bool("plain-only", false, "skip the rich channel and send mail directly")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if *userArg == "" || *message == "" {
		logging.Fatalf("both -user and -message are required")
	}

	user, err := loadUser(*userArg)
	if err != nil {
		logging.Fatalf("Failed to read user data: %v", err)
	}

	rich := channel.NewRichClient(cfg.RichChannel.BaseURL, cfg.RichChannel.Timeout)
	plain := channel.NewSMTPMailer(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.Alerts.Enabled,
	)

	dispatcher := alert.NewDispatcher(rich, plain, cfg.RichChannel.Enabled)
	limiter := ratelimit.NewWindow(cfg.RateLimit.Ceiling, cfg.RateLimit.Window)
	alerts := alert.NewService(dispatcher, limiter, cfg.Alerts.DefaultRoles, nil)

	outcome := alerts.Send(context.Background(), alert.Request{
		User:      user,
		Score:     *score,
		Message:   *message,
		Roles:     models.ParseRelationships(*roles),
		PlainOnly: *plainOnly,
	})

	out, _ := json.MarshalIndent(outcome, "", "  ")
	fmt.Println(string(out))

	if !outcome.Delivered {
		slog.Error("alert not delivered", "reason", outcome.Reason)
		os.Exit(1)
	}
}

func loadUser(arg string) (models.User, error) {
	data := []byte(arg)
	if _, err := os.Stat(arg); err == nil {
		data, err = os.ReadFile(arg)
		if err != nil {
			return models.User{}, err
		}
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, fmt.Errorf("user data must be valid JSON or a path to a JSON file: %w", err)
	}
	return user, nil
}
