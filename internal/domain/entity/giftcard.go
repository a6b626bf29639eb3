package entity

import "github.com/nashon/pos-ledger-api/internal/domain/enum"

// GiftCard is the local shape of a backend-owned gift card. The backend
// is the system of record; the local collection is a cache refreshed in
// full after every mutation.
type GiftCard struct {
	ID             string                `json:"id"`
	CardNumber     string                `json:"cardNumber"`
	RecipientName  string                `json:"recipientName,omitempty"`
	RecipientEmail string                `json:"recipientEmail,omitempty"`
	RecipientPhone string                `json:"recipientPhone,omitempty"`
	Issuer         enum.CardIssuer       `json:"issuer"`
	PartnerName    string                `json:"partnerName,omitempty"`
	Amount         float64               `json:"amount"`
	Balance        float64               `json:"balance"`
	ExpiryDate     string                `json:"expiryDate,omitempty"`
	Status         enum.CardStatus       `json:"status"`
	IssuedAt       string                `json:"issuedAt,omitempty"`
	Transactions   []GiftCardTransaction `json:"transactions,omitempty"`
}

// GiftCardTransaction is one redeem/reload entry on a card's history as
// reported by the backend.
type GiftCardTransaction struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// GiftCardUpdate carries the subset of card fields the backend allows to
// change after issuance. Card number and balance are immutable through
// this path; balance only moves via redeem/reload actions.
type GiftCardUpdate struct {
	RecipientName  *string          `json:"recipientName,omitempty"`
	RecipientEmail *string          `json:"recipientEmail,omitempty"`
	RecipientPhone *string          `json:"recipientPhone,omitempty"`
	Issuer         *enum.CardIssuer `json:"issuer,omitempty"`
	PartnerName    *string          `json:"partnerName,omitempty"`
	ExpiryDate     *string          `json:"expiryDate,omitempty"`
}
