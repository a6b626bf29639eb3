package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
)

const (
	giftCardsPath      = "/gift-cards/"
	giftCardActionPath = "/gift-cards/update/"
)

// giftCardRecord is the backend's wire shape for a gift card. Monetary
// fields arrive as strings and are coerced to floats on the way in.
type giftCardRecord struct {
	ID            json.Number             `json:"id"`
	CardNumber    string                  `json:"card_number"`
	CustomerName  string                  `json:"customer_name"`
	CustomerEmail string                  `json:"customer_email"`
	PhoneNumber   string                  `json:"phone_number"`
	Issuer        string                  `json:"issuer"`
	PartnerName   string                  `json:"partner_name"`
	Amount        string                  `json:"amount"`
	Balance       string                  `json:"balance"`
	ExpiryDate    string                  `json:"expiry_date"`
	Status        string                  `json:"status"`
	CreatedAt     string                  `json:"created_at"`
	IssuedAt      string                  `json:"issued_at"`
	Transactions  []cardTransactionRecord `json:"transactions"`
}

type cardTransactionRecord struct {
	ID        json.Number `json:"id"`
	Type      string      `json:"transaction_type"`
	Amount    string      `json:"amount"`
	CreatedAt string      `json:"created_at"`
}

// giftCardPayload is the local→backend shape used when issuing a card.
type giftCardPayload struct {
	CardNumber    string  `json:"card_number,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	PhoneNumber   string  `json:"phone_number,omitempty"`
	Issuer        string  `json:"issuer,omitempty"`
	PartnerName   string  `json:"partner_name,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	ExpiryDate    string  `json:"expiry_date,omitempty"`
}

// cardActionPayload is the body of the dedicated redeem/reload endpoint.
type cardActionPayload struct {
	CardNumber string  `json:"card_number"`
	ActionType string  `json:"action_type"`
	Amount     float64 `json:"amount"`
}

// parseMoney coerces the backend's string-typed monetary fields. Missing
// or malformed values default to zero.
func parseMoney(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// toLocal is the backend→local transform: field renames, money
// coercions and defaulting of optional fields.
func (r giftCardRecord) toLocal() entity.GiftCard {
	status := enum.CardStatus(r.Status)
	if !status.Valid() {
		status = enum.CardStatusActive
	}
	issuer := enum.CardIssuer(r.Issuer)
	if !issuer.Valid() {
		issuer = enum.CardIssuerStore
	}
	issuedAt := r.IssuedAt
	if issuedAt == "" {
		issuedAt = r.CreatedAt
	}

	card := entity.GiftCard{
		ID:             r.ID.String(),
		CardNumber:     r.CardNumber,
		RecipientName:  r.CustomerName,
		RecipientEmail: r.CustomerEmail,
		RecipientPhone: r.PhoneNumber,
		Issuer:         issuer,
		PartnerName:    r.PartnerName,
		Amount:         parseMoney(r.Amount),
		Balance:        parseMoney(r.Balance),
		ExpiryDate:     r.ExpiryDate,
		Status:         status,
		IssuedAt:       issuedAt,
	}
	for _, tx := range r.Transactions {
		card.Transactions = append(card.Transactions, entity.GiftCardTransaction{
			ID:        tx.ID.String(),
			Type:      tx.Type,
			Amount:    parseMoney(tx.Amount),
			Timestamp: tx.CreatedAt,
		})
	}
	return card
}

// toPayload is the local→backend transform, the inverse renames of
// toLocal for the fields the backend accepts at creation.
func toPayload(card entity.GiftCard) giftCardPayload {
	return giftCardPayload{
		CardNumber:    card.CardNumber,
		CustomerName:  card.RecipientName,
		CustomerEmail: card.RecipientEmail,
		PhoneNumber:   card.RecipientPhone,
		Issuer:        card.Issuer.String(),
		PartnerName:   card.PartnerName,
		Amount:        card.Amount,
		ExpiryDate:    card.ExpiryDate,
	}
}

// updatePayload maps the editable field subset to backend names. Only
// fields set on the update are included, matching PATCH semantics.
func updatePayload(upd entity.GiftCardUpdate) map[string]any {
	fields := map[string]any{}
	if upd.RecipientName != nil {
		fields["customer_name"] = *upd.RecipientName
	}
	if upd.RecipientEmail != nil {
		fields["customer_email"] = *upd.RecipientEmail
	}
	if upd.RecipientPhone != nil {
		fields["phone_number"] = *upd.RecipientPhone
	}
	if upd.Issuer != nil {
		fields["issuer"] = upd.Issuer.String()
	}
	if upd.PartnerName != nil {
		fields["partner_name"] = *upd.PartnerName
	}
	if upd.ExpiryDate != nil {
		fields["expiry_date"] = *upd.ExpiryDate
	}
	return fields
}

// ListGiftCards fetches every gift card page and transforms the records
// to local shape, preserving backend order.
func (c *Client) ListGiftCards(ctx context.Context) ([]entity.GiftCard, error) {
	records, err := fetchList[giftCardRecord](ctx, c, giftCardsPath)
	if err != nil {
		return nil, err
	}
	cards := make([]entity.GiftCard, 0, len(records))
	for _, r := range records {
		cards = append(cards, r.toLocal())
	}
	return cards, nil
}

// CreateGiftCard issues a new card. Callers refetch the full collection
// afterwards instead of merging the created record.
func (c *Client) CreateGiftCard(ctx context.Context, card entity.GiftCard) error {
	_, err := c.do(ctx, http.MethodPost, c.url(giftCardsPath), toPayload(card))
	return err
}

// UpdateGiftCard patches the mutable subset of a card's fields.
func (c *Client) UpdateGiftCard(ctx context.Context, id string, upd entity.GiftCardUpdate) error {
	_, err := c.do(ctx, http.MethodPatch, c.url(giftCardsPath+id+"/"), updatePayload(upd))
	return err
}

// PostCardAction sends a redeem or reload to the dedicated action
// endpoint. The backend is the final authority on balance movements.
func (c *Client) PostCardAction(ctx context.Context, cardNumber, actionType string, amount float64) error {
	payload := cardActionPayload{
		CardNumber: cardNumber,
		ActionType: actionType,
		Amount:     amount,
	}
	_, err := c.do(ctx, http.MethodPost, c.url(giftCardActionPath), payload)
	return err
}
