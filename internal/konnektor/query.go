package konnektor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aaearon/check-secunet/internal/konnektor/models"
)

// Key selects the query a check run performs.
type Key string

const (
	KeyStatus        Key = "status"
	KeyCards         Key = "cards"
	KeyVersion       Key = "version"
	KeyUpdateStatus  Key = "update-status"
	KeyPerformance   Key = "performance"
	KeySmcBStatus    Key = "smcb-status"
	KeyCardTerminals Key = "card-terminals"
)

// ErrUnknownKey is returned for a key outside Keys().
var ErrUnknownKey = errors.New("unknown key")

var keys = []Key{
	KeyStatus,
	KeyCards,
	KeyVersion,
	KeyUpdateStatus,
	KeyPerformance,
	KeySmcBStatus,
	KeyCardTerminals,
}

// Keys returns all supported query keys.
func Keys() []Key {
	return append([]Key(nil), keys...)
}

// KeyNames returns the supported keys joined with "|", for usage text.
func KeyNames() string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

// ParseKey validates s as a query key.
func ParseKey(s string) (Key, error) {
	for _, k := range keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: %s", ErrUnknownKey, s, KeyNames())
}

// IDField returns the result field identifying a record for list-shaped keys,
// or "" for keys that return a single object.
func (k Key) IDField() string {
	switch k {
	case KeyCards:
		return "cardhandle"
	case KeyCardTerminals:
		return "id"
	default:
		return ""
	}
}

// Querier runs the read queries of the management API.
// Satisfied by *Service.
type Querier interface {
	Status(ctx context.Context) (*models.StatusResult, error)
	Cards(ctx context.Context) ([]models.CardResult, error)
	Version(ctx context.Context) (*models.VersionInfo, error)
	UpdateStatus(ctx context.Context) (*models.UpdateStatusResult, error)
	Performance(ctx context.Context) (*models.BasicStatus, error)
	SmcBStatus(ctx context.Context, iccsn, tenant string) (*models.PinStatusResult, error)
	CardTerminals(ctx context.Context) ([]models.CardTerminalResult, error)
}

// QueryParams carries the caller-supplied inputs some queries need.
type QueryParams struct {
	Tenant    string
	ICCSNSmcB string
}

// Run performs the query selected by key.
func Run(ctx context.Context, q Querier, key Key, params QueryParams) (any, error) {
	switch key {
	case KeyStatus:
		return q.Status(ctx)
	case KeyCards:
		return q.Cards(ctx)
	case KeyVersion:
		return q.Version(ctx)
	case KeyUpdateStatus:
		return q.UpdateStatus(ctx)
	case KeyPerformance:
		return q.Performance(ctx)
	case KeySmcBStatus:
		return q.SmcBStatus(ctx, params.ICCSNSmcB, params.Tenant)
	case KeyCardTerminals:
		return q.CardTerminals(ctx)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
}
