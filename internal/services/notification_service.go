// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-portal/internal/config"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/repository"
)

// Mailer delivers a rendered HTML email.
type Mailer interface {
	Send(to, subject, body string) error
}

type NotificationService struct {
	audit  repository.AuditRepository
	config *config.Config
	mailer Mailer
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(audit repository.AuditRepository, config *config.Config, mailer Mailer) *NotificationService {
	if mailer == nil {
		mailer = &SMTPMailer{config: config.Email}
	}
	return &NotificationService{
		audit:  audit,
		config: config,
		mailer: mailer,
	}
}

// NotifyNewApplication puts a new submission on the admin console's notification list.
func (s *NotificationService) NotifyNewApplication(ctx context.Context, app *models.Application) error {
	notification := &models.AdminNotification{
		Type:                "new_application",
		Title:               "New " + app.Type,
		Message:             fmt.Sprintf("%s submitted a %s application", app.ApplicantName, app.Type),
		Priority:            "medium",
		Status:              string(app.Status),
		ActorID:             app.UserID,
		RelatedResourceType: "application",
		RelatedResourceID:   app.ID,
	}
	return s.audit.CreateNotification(ctx, notification)
}

// NotifyStatusChange records the decision for the admin console.
func (s *NotificationService) NotifyStatusChange(ctx context.Context, app *models.Application, from models.ApplicationStatus, adminID string) error {
	priority := "low"
	if app.Status == models.ApplicationStatusRejected {
		priority = "medium"
	}
	notification := &models.AdminNotification{
		Type:                "application_status_changed",
		Title:               fmt.Sprintf("Application %s", app.Status),
		Message:             fmt.Sprintf("%s for %s moved from %s to %s", app.Type, app.ApplicantName, from, app.Status),
		Priority:            priority,
		Status:              string(app.Status),
		ActorID:             adminID,
		RelatedResourceType: "application",
		RelatedResourceID:   app.ID,
	}
	return s.audit.CreateNotification(ctx, notification)
}

// SendSubmissionReceipt emails the applicant a confirmation with a dashboard link.
func (s *NotificationService) SendSubmissionReceipt(app *models.Application, to string) error {
	data := map[string]interface{}{
		"ApplicantName": app.ApplicantName,
		"PermitType":    app.Type,
		"ApplicationID": app.ID,
		"SubmittedAt":   app.Date.Format("2 January 2006 15:04 MST"),
		"DashboardURL":  fmt.Sprintf("%s/dashboard/applications/%s", s.config.Frontend.BaseURL, app.ID),
		"PortalName":    s.config.Email.FromName,
		"CurrentStatus": app.Status,
	}

	template, err := getEmailTemplate("submission_receipt")
	if err != nil {
		return err
	}
	body, err := s.renderTemplate(template.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.mailer.Send(to, template.Subject+" - "+app.Type, body)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var emailTemplates = map[string]EmailTemplate{
	"submission_receipt": {
		Subject: "Application received",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Application received</h2>
	<p>Hello {{.ApplicantName}},</p>
	<p>Your {{.PermitType}} application was received on {{.SubmittedAt}}.</p>
	<p>Reference: <strong>{{.ApplicationID}}</strong> (status: {{.CurrentStatus}})</p>
	<a href="{{.DashboardURL}}">Track your application</a>
	<p>Best regards,<br>{{.PortalName}}</p>
</body>
</html>`,
	},
}

func getEmailTemplate(templateType string) (EmailTemplate, error) {
	template, exists := emailTemplates[templateType]
	if !exists {
		return EmailTemplate{}, fmt.Errorf("unknown email template %q", templateType)
	}
	return template, nil
}

// SMTPMailer sends through the configured SMTP relay. Without a host it only logs.
type SMTPMailer struct {
	config config.EmailConfig
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.config.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.config.FromName, m.config.FromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", m.config.SMTPHost, m.config.SMTPPort)
	return smtp.SendMail(addr, auth, m.config.FromEmail, []string{to}, msg)
}
