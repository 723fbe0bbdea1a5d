package models

// CardType is the type of a smart card inserted into a card terminal.
type CardType string

const (
	CardTypeHBA   CardType = "HBA"
	CardTypeSMCKT CardType = "SMC_KT"
	CardTypeSMCB  CardType = "SMC_B"
	CardTypeSMCK  CardType = "SMC_K"
)

// EligibleCardTypes are the card types reported by the cards query.
var EligibleCardTypes = []CardType{CardTypeHBA, CardTypeSMCKT, CardTypeSMCB, CardTypeSMCK}

// IsEligible reports whether cards of this type are reported.
func (t CardType) IsEligible() bool {
	for _, e := range EligibleCardTypes {
		if t == e {
			return true
		}
	}
	return false
}

// Card is one entry of GET /rest/mgmt/ak/dienste/karten.
// Which fields must be present depends on the query reading the card, see
// CheckFields.
type Card struct {
	CardHandle     *string   `json:"cardhandle" validate:"required"`
	InsertTime     *int64    `json:"insertTime" validate:"required"`
	ExpirationDate *int64    `json:"expirationDate" validate:"required"`
	Type           *CardType `json:"type" validate:"required"`
	CommonName     *string   `json:"commonName" validate:"required"`
	ICCSN          *string   `json:"iccsn" validate:"required"`
}

// Card fields read by the queries, for CheckFields.
const (
	CardFieldHandle = "CardHandle"
	CardFieldType   = "Type"
	CardFieldICCSN  = "ICCSN"
)

// IsEligible reports whether the card has one of the reported types.
func (c Card) IsEligible() bool {
	return c.Type != nil && c.Type.IsEligible()
}

// CardResult is the printed form of a Card.
type CardResult struct {
	CardHandle     string   `json:"cardhandle"`
	InsertTime     int64    `json:"insertTime"`
	ExpirationDate int64    `json:"expirationDate"`
	Type           CardType `json:"type"`
	CommonName     string   `json:"commonName"`
	ICCSN          string   `json:"iccsn"`
}

// PinStatus is the response from GET /rest/mgmt/ak/dienste/karten/smb/{cardhandle}/{tenant}/pin.
type PinStatus struct {
	Status *string `json:"status" validate:"required"`
}

// PinStatusUnknown is reported when no SMC-B card matches the requested serial number.
const PinStatusUnknown = "unknown"

// PinStatusResult is the printed form of a PinStatus.
type PinStatusResult struct {
	Status string `json:"status"`
}

// CardTerminal is one entry of GET /rest/mgmt/ak/dienste/kartenterminals.
type CardTerminal struct {
	CardTerminalID *string `json:"cardTerminalId" validate:"required"`
	Label          *string `json:"label" validate:"required"`
	IPAddress      *string `json:"ipAddress" validate:"required"`
	Port           *int    `json:"port" validate:"required"`
	Hostname       *string `json:"hostname" validate:"required"`
	MACAddress     *string `json:"macAddress" validate:"required"`
	SlotCount      *int    `json:"slotCount" validate:"required"`
	Correlation    *string `json:"correlation" validate:"required"`
	AutoUpdate     *bool   `json:"autoUpdate" validate:"required"`
	Connected      *bool   `json:"connected" validate:"required"`
}

// CardTerminalResult is the printed form of a CardTerminal.
type CardTerminalResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	IPAddress   string `json:"ipAddress"`
	Port        int    `json:"port"`
	Hostname    string `json:"hostname"`
	MACAddress  string `json:"macAddress"`
	SlotCount   int    `json:"slotCount"`
	Correlation string `json:"correlation"`
	AutoUpdate  int    `json:"autoUpdate"`
	Connected   int    `json:"connected"`
}

// LoginRequest is the body of POST /rest/mgmt/ak/konten/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
