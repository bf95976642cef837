package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
	CurrencyBRL Currency = "BRL"
	CurrencyZAR Currency = "ZAR"
	CurrencySGD Currency = "SGD"
	CurrencyMXN Currency = "MXN"
	CurrencyTRY Currency = "TRY"
)

// Currencies is the closed set accepted by the backend.
var Currencies = []Currency{
	CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyJPY, CurrencyCHF,
	CurrencyCAD, CurrencyAUD, CurrencyCNY, CurrencyINR, CurrencyBRL,
	CurrencyZAR, CurrencySGD, CurrencyMXN, CurrencyTRY,
}

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

type Device string

const (
	DeviceWeb    Device = "web"
	DeviceMobile Device = "mobile"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

// Terminal reports whether no further status transition is allowed. The only
// legal transition is pending -> {success, failed}.
func (s TransactionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Amount is a money value as it appears on the wire. Source forms may submit
// non-numeric strings; those are carried through unchanged and coerce to zero
// when aggregated, rather than failing the whole decode.
type Amount string

func NewAmount(d decimal.Decimal) Amount {
	return Amount(d.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(raw)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if d, err := decimal.NewFromString(strings.TrimSpace(string(a))); err == nil {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(a))
}

// Decimal coerces the amount to a decimal, returning zero for non-numeric or
// missing values.
func (a Amount) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(a)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

func (a Amount) String() string {
	return string(a)
}

// Transaction is the server-owned record. ID, PSP and CreatedAt are assigned
// by the backend and never set by this client.
type Transaction struct {
	ID        string            `json:"id"`
	Amount    Amount            `json:"amount"`
	Currency  Currency          `json:"currency"`
	Country   string            `json:"country"`
	Device    Device            `json:"device"`
	PSP       string            `json:"psp"`
	Status    TransactionStatus `json:"status"`
	LatencyMs *int              `json:"latency_ms,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Draft is the client-built creation payload.
type Draft struct {
	Amount   float64 `json:"amount" validate:"required"`
	Currency string  `json:"currency" validate:"required,oneof=EUR USD GBP JPY CHF CAD AUD CNY INR BRL ZAR SGD MXN TRY"`
	Country  string  `json:"country" validate:"required"`
	Device   string  `json:"device" validate:"required,oneof=web mobile"`
}

// ServerMetrics is the backend-computed aggregate; the client renders it
// as-is instead of recomputing.
type ServerMetrics struct {
	TotalTransactions int            `json:"total_transactions"`
	TotalVolume       float64        `json:"total_volume"`
	TransactionsByPSP map[string]int `json:"transactions_by_psp"`
}

// StatusUpdate is the webhook payload posted for one transaction.
type StatusUpdate struct {
	TxID   string            `json:"tx_id"`
	Status TransactionStatus `json:"status"`
}

// WebhookAck acknowledges an accepted status update. The local snapshot only
// reflects the new status after the next refresh.
type WebhookAck struct {
	TxID   string            `json:"tx_id"`
	Status TransactionStatus `json:"status"`
}
