package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"souveno-backend/internal/contact"
)

const contactAdminTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>Message:</strong></p>
  <p>{{.Body}}</p>
  <p><strong>Submitted at:</strong> {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
</body>
</html>`

const contactAckTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>Thank you for contacting Souveno Hub!</h2>
  <p>Dear {{.FirstName}},</p>
  <p>We have received your message and will get back to you within 24 hours.</p>
  <h3>Your Message:</h3>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>Message:</strong> {{.Body}}</p>
  <p>Best regards,<br>Souveno Hub Team</p>
</body>
</html>`

var (
	contactAdminTmpl = template.Must(template.New("contact_admin").Parse(contactAdminTemplate))
	contactAckTmpl   = template.Must(template.New("contact_ack").Parse(contactAckTemplate))
)

func (c *BrevoClient) SendContactAdminNotification(ctx context.Context, msg contact.Message) (string, error) {
	var buf bytes.Buffer
	if err := contactAdminTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	subject := fmt.Sprintf("New Contact Form Submission - %s", msg.Subject)
	return c.sendHTML(ctx, c.adminEmail, "", subject, buf.String())
}

func (c *BrevoClient) SendContactAcknowledgement(ctx context.Context, msg contact.Message) (string, error) {
	var buf bytes.Buffer
	if err := contactAckTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	name := msg.FirstName + " " + msg.LastName
	return c.sendHTML(ctx, msg.Email, name, "Thank you for contacting Souveno Hub", buf.String())
}
