package services

import (
	"context"
	"errors"
	"sync"

	"github.com/javajoker/permit-portal/internal/config"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/repository"
)

var _ repository.ApplicationRepository = (*failingApplicationRepo)(nil)

// failingApplicationRepo fails every write with a fixed store error.
type failingApplicationRepo struct {
	repository.ApplicationRepository
	err error
}

func (r *failingApplicationRepo) Create(ctx context.Context, app *models.Application) (string, error) {
	return "", r.err
}

var errStoreDown = errors.New("document store unavailable")

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func runInline(f func()) { f() }

func testConfig() *config.Config {
	return &config.Config{
		Frontend: config.FrontendConfig{BaseURL: "https://permits.example"},
		Email:    config.EmailConfig{FromName: "Permit Portal"},
	}
}
