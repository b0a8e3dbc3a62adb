package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmailTemplate(t *testing.T) {
	receipt, err := getEmailTemplate("submission_receipt")
	require.NoError(t, err)
	assert.Equal(t, "Application received", receipt.Subject)

	_, err = getEmailTemplate("weekly_digest")
	assert.EqualError(t, err, `unknown email template "weekly_digest"`)
}

func TestEmailTemplatesRender(t *testing.T) {
	svc := NewNotificationService(nil, testConfig(), &fakeMailer{})
	for name, tmpl := range emailTemplates {
		body, err := svc.renderTemplate(tmpl.Body, map[string]interface{}{"ApplicantName": "Ada"})
		require.NoError(t, err, name)
		assert.Contains(t, body, "Ada", name)
	}
}
