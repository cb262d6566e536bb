// Package channel implements the two delivery collaborators the dispatcher
// talks to: the structured notification API and the SMTP mail submission.
package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type richRequest struct {
	User          models.User           `json:"user"`
	EmotionScore  float64               `json:"emotionScore"`
	Message       string                `json:"message"`
	Relationships []models.Relationship `json:"relationships"`
}

type richResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

// RichClient posts structured alert payloads to the notification API at the
// configured base URL.
type RichClient struct {
	baseURL string
	client  *http.Client
}

func NewRichClient(baseURL string, timeout time.Duration) *RichClient {
	return &RichClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Notify submits the alert and returns nil only when the collaborator reports
// success. Timeouts and malformed responses come back as plain errors for the
// dispatcher to treat as a failed rich attempt.
func (c *RichClient) Notify(ctx context.Context, user models.User, event models.DistressEvent, roles []models.Relationship) error {
	payload := richRequest{
		User:          user,
		EmotionScore:  event.Score,
		Message:       event.Message,
		Relationships: roles,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding notification payload: %w", err)
	}

	url := c.baseURL + "/api/notify/emergency"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data richResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("error decoding resp.Body: %w", err)
	}

	if data.Status != "success" {
		if data.Trace != "" {
			return fmt.Errorf("notification rejected: %s (%s)", data.Message, data.Trace)
		}
		return fmt.Errorf("notification rejected: %s", data.Message)
	}

	return nil
}
