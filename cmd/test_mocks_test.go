package cmd

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aaearon/check-secunet/internal/konnektor"
	"github.com/aaearon/check-secunet/internal/konnektor/models"
	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// mockSession implements the konnektorSession interface for testing
type mockSession struct {
	loginErr  error
	logoutErr error
	queryErr  error

	status        *models.StatusResult
	cards         []models.CardResult
	version       *models.VersionInfo
	updateStatus  *models.UpdateStatusResult
	performance   *models.BasicStatus
	pinStatus     *models.PinStatusResult
	cardTerminals []models.CardTerminalResult

	calls    []string
	username string
	password string
	iccsn    string
	tenant   string
}

func (m *mockSession) Login(ctx context.Context, username, password string) error {
	m.calls = append(m.calls, "login")
	m.username, m.password = username, password
	return m.loginErr
}

func (m *mockSession) Logout(ctx context.Context) error {
	m.calls = append(m.calls, "logout")
	return m.logoutErr
}

func (m *mockSession) Status(ctx context.Context) (*models.StatusResult, error) {
	m.calls = append(m.calls, "status")
	return m.status, m.queryErr
}

func (m *mockSession) Cards(ctx context.Context) ([]models.CardResult, error) {
	m.calls = append(m.calls, "cards")
	return m.cards, m.queryErr
}

func (m *mockSession) Version(ctx context.Context) (*models.VersionInfo, error) {
	m.calls = append(m.calls, "version")
	return m.version, m.queryErr
}

func (m *mockSession) UpdateStatus(ctx context.Context) (*models.UpdateStatusResult, error) {
	m.calls = append(m.calls, "update-status")
	return m.updateStatus, m.queryErr
}

func (m *mockSession) Performance(ctx context.Context) (*models.BasicStatus, error) {
	m.calls = append(m.calls, "performance")
	return m.performance, m.queryErr
}

func (m *mockSession) SmcBStatus(ctx context.Context, iccsn, tenant string) (*models.PinStatusResult, error) {
	m.calls = append(m.calls, "smcb-status")
	m.iccsn, m.tenant = iccsn, tenant
	return m.pinStatus, m.queryErr
}

func (m *mockSession) CardTerminals(ctx context.Context) ([]models.CardTerminalResult, error) {
	m.calls = append(m.calls, "card-terminals")
	return m.cardTerminals, m.queryErr
}

// mockSessionFactory hands out a fixed session and records the options it was called with
type mockSessionFactory struct {
	session *mockSession
	opts    []konnektor.ClientOptions
}

func (f *mockSessionFactory) new(opts konnektor.ClientOptions) konnektorSession {
	f.opts = append(f.opts, opts)
	return f.session
}

// mockPrompter implements passwordPrompter for testing
type mockPrompter struct {
	password string
	err      error
	called   bool
}

func (p *mockPrompter) prompt(username string) (string, error) {
	p.called = true
	return p.password, p.err
}

// mockSelfUpdater implements the selfUpdater interface for testing
type mockSelfUpdater struct {
	release   *selfupdate.Release
	updateErr error

	latest    *selfupdate.Release
	found     bool
	detectErr error

	gotSlug    string
	gotCurrent semver.Version
	updated    bool
}

func (m *mockSelfUpdater) UpdateSelf(current semver.Version, slug string) (*selfupdate.Release, error) {
	m.updated = true
	m.gotCurrent, m.gotSlug = current, slug
	return m.release, m.updateErr
}

func (m *mockSelfUpdater) DetectLatest(slug string) (*selfupdate.Release, bool, error) {
	m.gotSlug = slug
	return m.latest, m.found, m.detectErr
}

// spyLogger captures Info() calls for testing verbose output.
type spyLogger struct {
	messages []string
}

func (s *spyLogger) Info(msg string, v ...interface{}) {
	s.messages = append(s.messages, fmt.Sprintf(msg, v...))
}

// logged reports whether any captured message contains substr.
func (s *spyLogger) logged(substr string) bool {
	for _, msg := range s.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// swapLogger installs a spy as the package logger for the duration of the test.
func swapLogger(t *testing.T) *spyLogger {
	t.Helper()
	spy := &spyLogger{}
	old := log
	log = spy
	t.Cleanup(func() { log = old })
	return spy
}

// setBuild sets the ldflags variables for the duration of the test.
func setBuild(t *testing.T, v, c, d string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := version, commit, buildDate
	version, commit, buildDate = v, c, d
	t.Cleanup(func() { version, commit, buildDate = oldVersion, oldCommit, oldDate })
}
