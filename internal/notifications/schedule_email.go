package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"souveno-backend/internal/schedule"
)

const scheduleAdminTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New Call Scheduled</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Company:</strong> {{if .Company}}{{.Company}}{{else}}Not provided{{end}}</p>
  <p><strong>Service Type:</strong> {{.ServiceType}}</p>
  <p><strong>Preferred Date:</strong> {{.PreferredDate}}</p>
  <p><strong>Preferred Time:</strong> {{.PreferredTime}}</p>
  <p><strong>Message:</strong></p>
  <p>{{if .Message}}{{.Message}}{{else}}No message provided{{end}}</p>
  <p><strong>Scheduled at:</strong> {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
</body>
</html>`

const scheduleConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>Call Scheduled Successfully!</h2>
  <p>Dear {{.Name}},</p>
  <p>Thank you for scheduling a call with Souveno Hub. We have received your request and will contact you at the scheduled time.</p>
  <h3>Appointment Details:</h3>
  <ul>
    <li>Service Type: {{.ServiceType}}</li>
    <li>Date: {{.PreferredDate}}</li>
    <li>Time: {{.PreferredTime}}</li>
    <li>Phone: {{.Phone}}</li>
    {{if .Company}}<li>Company: {{.Company}}</li>{{end}}
    {{if .Message}}<li>Your Message: {{.Message}}</li>{{end}}
  </ul>
  <p>If you need to reschedule or have any questions, please contact us.</p>
  <p>Best regards,<br>Souveno Hub Team</p>
</body>
</html>`

var (
	scheduleAdminTmpl        = template.Must(template.New("schedule_admin").Parse(scheduleAdminTemplate))
	scheduleConfirmationTmpl = template.Must(template.New("schedule_confirmation").Parse(scheduleConfirmationTemplate))
)

func (c *BrevoClient) SendScheduleAdminNotification(ctx context.Context, req schedule.Request) (string, error) {
	var buf bytes.Buffer
	if err := scheduleAdminTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	subject := fmt.Sprintf("New Call Scheduled - %s", req.ServiceType)
	return c.sendHTML(ctx, c.adminEmail, "", subject, buf.String())
}

func (c *BrevoClient) SendScheduleConfirmation(ctx context.Context, req schedule.Request) (string, error) {
	var buf bytes.Buffer
	if err := scheduleConfirmationTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return c.sendHTML(ctx, req.Email, req.Name, "Call Scheduled Successfully - Souveno Hub", buf.String())
}
