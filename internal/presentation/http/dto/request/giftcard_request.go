package request

import "github.com/nashon/pos-ledger-api/internal/domain/enum"

// IssueGiftCardRequest represents a gift card issuance request. A blank
// card number is generated server-side.
type IssueGiftCardRequest struct {
	CardNumber     string          `json:"cardNumber"`
	RecipientName  string          `json:"recipientName"`
	RecipientEmail string          `json:"recipientEmail" binding:"omitempty,email"`
	RecipientPhone string          `json:"recipientPhone"`
	Issuer         enum.CardIssuer `json:"issuer"`
	PartnerName    string          `json:"partnerName"`
	Amount         float64         `json:"amount" binding:"required,gt=0"`
	ExpiryDate     string          `json:"expiryDate"`
}

// UpdateGiftCardRequest represents a gift card update request. Nil
// fields are left unchanged; card number and balance cannot change here.
type UpdateGiftCardRequest struct {
	RecipientName  *string          `json:"recipientName"`
	RecipientEmail *string          `json:"recipientEmail" binding:"omitempty,email"`
	RecipientPhone *string          `json:"recipientPhone"`
	Issuer         *enum.CardIssuer `json:"issuer"`
	PartnerName    *string          `json:"partnerName"`
	ExpiryDate     *string          `json:"expiryDate"`
}

// CardActionRequest represents a redeem or reload against a card
type CardActionRequest struct {
	CardNumber string  `json:"cardNumber" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}
