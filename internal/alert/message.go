package alert

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

// Email is the composed plain-channel message for one event.
type Email struct {
	Subject string
	Body    string
}

type emailData struct {
	Name         string
	Severity     models.Severity
	Score        float64
	Timestamp    string
	Message      string
	Relationship string
}

// Body content mirrors the alert mail the platform has always sent: alert
// details, the triggering message, recommended actions, and crisis resources.
// The triggering message and user name are free text and are escaped by
// html/template when interpolated.
var emailTmpl = template.Must(template.New("alert-email").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #ff6b6b, #ee5a24); color: white; padding: 20px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="margin: 0; font-size: 24px;">🚨 Emergency Alert</h1>
    <p style="margin: 5px 0 0 0; font-size: 16px;">High Emotional Distress Detected</p>
  </div>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 0 0 10px 10px; border: 1px solid #dee2e6;">
    <h2 style="color: #dc3545; margin-top: 0;">Immediate Attention Required</h2>
    <p><strong>{{.Name}}</strong> is experiencing significant emotional distress and may need immediate support.</p>
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0; border-left: 4px solid #dc3545;">
      <h3 style="margin-top: 0; color: #495057;">Alert Details:</h3>
      <ul style="margin: 10px 0; padding-left: 20px;">
        <li><strong>Severity Level:</strong> <span style="color: #dc3545; font-weight: bold;">{{.Severity}}</span></li>
        <li><strong>Distress Score:</strong> {{printf "%g" .Score}}/100</li>
        <li><strong>Timestamp:</strong> {{.Timestamp}}</li>
        <li><strong>Your Relationship:</strong> {{.Relationship}}</li>
      </ul>
    </div>
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0;">
      <h3 style="margin-top: 0; color: #495057;">Recent Message:</h3>
      <p style="font-style: italic; color: #6c757d; border-left: 3px solid #6c757d; padding-left: 15px; margin: 10px 0;">&quot;{{.Message}}&quot;</p>
    </div>
    <div style="background: #e7f3ff; padding: 15px; border-radius: 8px; margin: 15px 0; border: 1px solid #b3d9ff;">
      <h3 style="margin-top: 0; color: #0066cc;">🤝 Recommended Actions:</h3>
      <ul style="margin: 10px 0; padding-left: 20px; color: #333;">
        <li>Reach out to {{.Name}} immediately via phone or text</li>
        <li>Ask open-ended questions about their feelings</li>
        <li>Listen actively and validate their emotions</li>
        <li>Encourage professional help if needed</li>
        <li>Follow up within 24 hours</li>
      </ul>
    </div>
    <div style="background: #fff3cd; padding: 15px; border-radius: 8px; margin: 15px 0; border: 1px solid #ffeaa7;">
      <h3 style="margin-top: 0; color: #856404;">📞 Crisis Resources:</h3>
      <ul style="margin: 10px 0; padding-left: 20px; color: #333;">
        <li><strong>National Suicide Prevention Lifeline:</strong> 988</li>
        <li><strong>Crisis Text Line:</strong> Text HOME to 741741</li>
        <li><strong>International Association for Suicide Prevention:</strong> <a href="https://www.iasp.info/resources/Crisis_Centres/">iasp.info</a></li>
      </ul>
    </div>
    <div style="text-align: center; margin-top: 20px; padding-top: 20px; border-top: 1px solid #dee2e6;">
      <p style="color: #6c757d; font-size: 14px; margin: 0;">This is an automated alert from the ThirdWave Emotional Support Platform.<br>For technical issues, please contact support.</p>
    </div>
  </div>
</div>
`))

// BuildEmail composes the plain-channel subject and HTML body. Output is
// byte-identical for identical inputs; the timestamp comes from the event.
func BuildEmail(user models.User, severity models.Severity, event models.DistressEvent, first models.Contact) (Email, error) {
	data := emailData{
		Name:         user.Name,
		Severity:     severity,
		Score:        event.Score,
		Timestamp:    event.Timestamp.UTC().Format(time.RFC3339),
		Message:      event.Message,
		Relationship: titleCase(string(first.Relationship)),
	}

	var b strings.Builder
	if err := emailTmpl.Execute(&b, data); err != nil {
		return Email{}, fmt.Errorf("error rendering alert email: %w", err)
	}

	return Email{
		Subject: fmt.Sprintf("🚨 %s ALERT: Emotional Support Needed for %s", severity, user.Name),
		Body:    b.String(),
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
