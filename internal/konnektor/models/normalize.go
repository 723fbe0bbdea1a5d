package models

import (
	"fmt"
	"strings"
)

// MillisToSeconds converts an epoch timestamp in milliseconds to seconds,
// rounding to the nearest second with halves going to the even second.
func MillisToSeconds(ms int64) int64 {
	q, r := ms/1000, ms%1000
	if r < 0 {
		q, r = q-1, r+1000
	}
	if r > 500 || (r == 500 && q%2 != 0) {
		q++
	}
	return q
}

// BoolToInt maps true to 1 and false to 0.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ToResult flattens the connector status.
func (s ConnectorStatus) ToResult() StatusResult {
	return StatusResult{
		VpnTiConnected:           BoolToInt(deref(s.VpnTiConnected)),
		VpnTiConnectionStateDate: MillisToSeconds(deref(s.VpnTiConnectionStateDate)),
		ConnectorStarted:         MillisToSeconds(deref(s.ConnectorStarted)),
		RestartRequired:          BoolToInt(deref(s.RestartRequired)),
	}
}

// ToResult flattens the update information.
func (u UpdateInfo) ToResult() UpdateStatusResult {
	return UpdateStatusResult{LastUpdateCheck: MillisToSeconds(deref(u.LastUpdate))}
}

// ToResult flattens a card record.
func (c Card) ToResult() CardResult {
	return CardResult{
		CardHandle:     deref(c.CardHandle),
		InsertTime:     MillisToSeconds(deref(c.InsertTime)),
		ExpirationDate: MillisToSeconds(deref(c.ExpirationDate)),
		Type:           deref(c.Type),
		CommonName:     deref(c.CommonName),
		ICCSN:          deref(c.ICCSN),
	}
}

// ToResult flattens a card terminal record.
func (t CardTerminal) ToResult() CardTerminalResult {
	return CardTerminalResult{
		ID:          deref(t.CardTerminalID),
		Label:       deref(t.Label),
		IPAddress:   deref(t.IPAddress),
		Port:        deref(t.Port),
		Hostname:    deref(t.Hostname),
		MACAddress:  deref(t.MACAddress),
		SlotCount:   deref(t.SlotCount),
		Correlation: deref(t.Correlation),
		AutoUpdate:  BoolToInt(deref(t.AutoUpdate)),
		Connected:   BoolToInt(deref(t.Connected)),
	}
}

// ToResult lower-cases the PIN status.
func (p PinStatus) ToResult() PinStatusResult {
	return PinStatusResult{Status: strings.ToLower(deref(p.Status))}
}

// EligibleCards returns the flattened cards of an eligible type, in input order.
// Every card must carry its type and every eligible card all printed fields.
func EligibleCards(cards []Card) ([]CardResult, error) {
	out := make([]CardResult, 0, len(cards))
	for i, c := range cards {
		if err := CheckFields(c, CardFieldType); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if !c.IsEligible() {
			continue
		}
		if err := CheckFields(c); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c.ToResult())
	}
	return out, nil
}

// FindCardByICCSN returns the last card with the given serial number, or nil.
// Every card must carry a serial number.
func FindCardByICCSN(cards []Card, iccsn string) (*Card, error) {
	var match *Card
	for i := range cards {
		if err := CheckFields(cards[i], CardFieldICCSN); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if *cards[i].ICCSN == iccsn {
			match = &cards[i]
		}
	}
	return match, nil
}
