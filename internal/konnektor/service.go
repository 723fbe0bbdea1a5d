// Package konnektor talks to the management REST API of a Secunet konnektor.
package konnektor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaearon/check-secunet/internal/konnektor/models"
)

const (
	routeLogin          = "/rest/mgmt/ak/konten/login"
	routeLogout         = "/rest/mgmt/ak/konten/profil/logout"
	routeStatus         = "/rest/mgmt/ak/dienste/status"
	routeVersion        = "/rest/mgmt/ak/dienste/status/version"
	routeCards          = "/rest/mgmt/ak/dienste/karten"
	routeCardTerminals  = "/rest/mgmt/ak/dienste/kartenterminals"
	routeUpdateStatus   = "/rest/mgmt/ak/dienste/ksr/informationen/updates-konnektor"
	routeBasicStatus    = "/rest/mgmt/nk/status/basic"
	routeSmcBPinPattern = "/rest/mgmt/ak/dienste/karten/smb/%s/%s/pin"
)

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 4096

var (
	// ErrAuthentication is returned when the konnektor rejects the login.
	ErrAuthentication = errors.New("authentication failed")
	// ErrUnexpectedStatus is returned when a query does not answer 200.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrNotLoggedIn is returned by Logout without a prior successful Login.
	ErrNotLoggedIn = errors.New("not logged in")
)

// StatusError reports a non-success response of a konnektor request.
type StatusError struct {
	Request    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d", e.Request, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Request, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Service provides access to the konnektor management API for one session.
type Service struct {
	httpClient httpClient
	token      string
}

// NewService creates a Service talking to the konnektor described by opts.
// Requests are logged through l.
func NewService(opts ClientOptions, l logger) *Service {
	return &Service{
		httpClient: newLoggingClient(newRESTClient(opts), l),
	}
}

// NewServiceWithClient creates a service with a custom HTTP client.
// This is primarily for testing with mock clients.
func NewServiceWithClient(client httpClient) *Service {
	return &Service{httpClient: client}
}

// Login authenticates against the konnektor and attaches the issued session
// token to all further requests.
// POST /rest/mgmt/ak/konten/login
func (s *Service) Login(ctx context.Context, username, password string) error {
	resp, err := s.httpClient.Post(ctx, routeLogin, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: login returned status %d", ErrAuthentication, resp.StatusCode)
	}

	token := resp.Header.Get("Authorization")
	if token == "" {
		return fmt.Errorf("%w: login response carried no session token", ErrAuthentication)
	}

	s.token = token
	s.httpClient.SetHeader("Authorization", token)
	return nil
}

// Logout invalidates the session token.
// DELETE /rest/mgmt/ak/konten/profil/logout
func (s *Service) Logout(ctx context.Context) error {
	if s.token == "" {
		return ErrNotLoggedIn
	}

	resp, err := s.httpClient.Delete(ctx, routeLogout)
	if err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return newStatusError("logout", resp)
	}

	s.token = ""
	return nil
}

// Status returns the connectivity state of the konnektor.
// GET /rest/mgmt/ak/dienste/status
func (s *Service) Status(ctx context.Context) (*models.StatusResult, error) {
	raw, err := getChecked[models.ConnectorStatus](ctx, s.httpClient, "status", routeStatus)
	if err != nil {
		return nil, err
	}
	result := raw.ToResult()
	return &result, nil
}

// Cards returns the inserted cards of an eligible type.
// GET /rest/mgmt/ak/dienste/karten
func (s *Service) Cards(ctx context.Context) ([]models.CardResult, error) {
	raw, err := getJSON[[]models.Card](ctx, s.httpClient, "cards", routeCards)
	if err != nil {
		return nil, err
	}
	cards, err := models.EligibleCards(raw)
	if err != nil {
		return nil, invalidResponse("cards", err)
	}
	return cards, nil
}

// Version returns firmware, hardware and identity information.
// GET /rest/mgmt/ak/dienste/status/version
func (s *Service) Version(ctx context.Context) (*models.VersionInfo, error) {
	raw, err := getChecked[models.VersionInfo](ctx, s.httpClient, "version", routeVersion)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

// UpdateStatus returns when the konnektor last checked for updates.
// GET /rest/mgmt/ak/dienste/ksr/informationen/updates-konnektor
func (s *Service) UpdateStatus(ctx context.Context) (*models.UpdateStatusResult, error) {
	raw, err := getChecked[models.UpdateInfo](ctx, s.httpClient, "update-status", routeUpdateStatus)
	if err != nil {
		return nil, err
	}
	result := raw.ToResult()
	return &result, nil
}

// Performance returns CPU, memory and load telemetry of the network connector.
// GET /rest/mgmt/nk/status/basic
func (s *Service) Performance(ctx context.Context) (*models.BasicStatus, error) {
	raw, err := getChecked[models.BasicStatus](ctx, s.httpClient, "performance", routeBasicStatus)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}

// SmcBStatus returns the PIN status of the SMC-B card with the given serial
// number in the given tenant. When several cards carry that serial number the
// last one is used. When none does the status is "unknown" and the PIN
// endpoint is not called.
// GET /rest/mgmt/ak/dienste/karten, then GET /rest/mgmt/ak/dienste/karten/smb/{cardhandle}/{tenant}/pin
func (s *Service) SmcBStatus(ctx context.Context, iccsn, tenant string) (*models.PinStatusResult, error) {
	cards, err := getJSON[[]models.Card](ctx, s.httpClient, "smcb-status", routeCards)
	if err != nil {
		return nil, err
	}

	card, err := models.FindCardByICCSN(cards, iccsn)
	if err != nil {
		return nil, invalidResponse("smcb-status", err)
	}
	if card == nil {
		return &models.PinStatusResult{Status: models.PinStatusUnknown}, nil
	}
	if err := models.CheckFields(*card, models.CardFieldHandle); err != nil {
		return nil, invalidResponse("smcb-status", err)
	}

	route := fmt.Sprintf(routeSmcBPinPattern, url.PathEscape(*card.CardHandle), url.PathEscape(tenant))
	pin, err := getChecked[models.PinStatus](ctx, s.httpClient, "smcb-status", route)
	if err != nil {
		return nil, err
	}

	result := pin.ToResult()
	return &result, nil
}

// CardTerminals returns all card terminals known to the konnektor.
// GET /rest/mgmt/ak/dienste/kartenterminals
func (s *Service) CardTerminals(ctx context.Context) ([]models.CardTerminalResult, error) {
	raw, err := getJSON[[]models.CardTerminal](ctx, s.httpClient, "card-terminals", routeCardTerminals)
	if err != nil {
		return nil, err
	}

	result := make([]models.CardTerminalResult, 0, len(raw))
	for i, ct := range raw {
		if err := models.CheckFields(ct); err != nil {
			return nil, invalidResponse("card-terminals", fmt.Errorf("card terminal %d: %w", i, err))
		}
		result = append(result, ct.ToResult())
	}
	return result, nil
}

// getChecked is getJSON for single-object responses, rejecting payloads that
// lack a field that is read.
func getChecked[T any](ctx context.Context, c httpClient, name, route string) (T, error) {
	result, err := getJSON[T](ctx, c, name, route)
	if err != nil {
		return result, err
	}
	if err := models.CheckFields(result); err != nil {
		return result, invalidResponse(name, err)
	}
	return result, nil
}

func invalidResponse(name string, err error) error {
	return fmt.Errorf("invalid %s response: %w", name, err)
}

// getJSON issues a GET and decodes a 200 response into T.
func getJSON[T any](ctx context.Context, c httpClient, name, route string) (T, error) {
	var result T

	resp, err := c.Get(ctx, route)
	if err != nil {
		return result, fmt.Errorf("failed to get %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, newStatusError(name, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode %s response: %w", name, err)
	}

	return result, nil
}

func newStatusError(name string, resp *http.Response) *StatusError {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if readErr != nil {
		body = []byte("(failed to read response body)")
	}
	return &StatusError{
		Request:    name,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
