package backend

import (
	"encoding/json"
	"testing"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
)

func TestGiftCardTransformFromBackend(t *testing.T) {
	raw := `{
		"id": 42,
		"card_number": "GC000000000042",
		"customer_name": "Jane Doe",
		"customer_email": "jane@example.com",
		"phone_number": "+254700000000",
		"issuer": "Partner",
		"partner_name": "Acme",
		"amount": "50.00",
		"balance": "32.50",
		"expiry_date": "2027-01-31",
		"status": "Active",
		"created_at": "2026-01-01T10:00:00Z",
		"transactions": [
			{"id": 7, "transaction_type": "redeem", "amount": "17.50", "created_at": "2026-02-01T09:00:00Z"}
		]
	}`
	var rec giftCardRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	card := rec.toLocal()
	if card.ID != "42" || card.CardNumber != "GC000000000042" {
		t.Errorf("identity fields wrong: %+v", card)
	}
	if card.RecipientName != "Jane Doe" || card.RecipientEmail != "jane@example.com" || card.RecipientPhone != "+254700000000" {
		t.Errorf("recipient fields wrong: %+v", card)
	}
	if card.Amount != 50.00 || card.Balance != 32.50 {
		t.Errorf("monetary coercion wrong: amount %v balance %v", card.Amount, card.Balance)
	}
	if card.Issuer != enum.CardIssuerPartner || card.PartnerName != "Acme" {
		t.Errorf("issuer fields wrong: %+v", card)
	}
	// created_at backfills issuedAt when issued_at is absent.
	if card.IssuedAt != "2026-01-01T10:00:00Z" {
		t.Errorf("issuedAt = %q", card.IssuedAt)
	}
	if len(card.Transactions) != 1 || card.Transactions[0].Amount != 17.50 {
		t.Errorf("transactions wrong: %+v", card.Transactions)
	}
}

func TestGiftCardTransformDefaults(t *testing.T) {
	var rec giftCardRecord
	if err := json.Unmarshal([]byte(`{"id": 1, "card_number": "GC000000000001"}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	card := rec.toLocal()
	if card.Status != enum.CardStatusActive {
		t.Errorf("status defaulted to %q, want Active", card.Status)
	}
	if card.Issuer != enum.CardIssuerStore {
		t.Errorf("issuer defaulted to %q, want Store", card.Issuer)
	}
	if card.Balance != 0 || card.Amount != 0 {
		t.Errorf("missing money should coerce to zero: %+v", card)
	}
}

func TestGiftCardTransformRoundTrip(t *testing.T) {
	raw := `{
		"id": 9,
		"card_number": "GC000000000009",
		"customer_name": "John",
		"customer_email": "john@example.com",
		"phone_number": "123",
		"issuer": "Store",
		"partner_name": "",
		"amount": "25.00",
		"balance": "25.00",
		"expiry_date": "2026-12-31",
		"status": "Active"
	}`
	var rec giftCardRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	payload := toPayload(rec.toLocal())
	// The backend's mutable fields must survive the there-and-back trip.
	if payload.CustomerName != rec.CustomerName ||
		payload.CustomerEmail != rec.CustomerEmail ||
		payload.PhoneNumber != rec.PhoneNumber ||
		payload.Issuer != rec.Issuer ||
		payload.PartnerName != rec.PartnerName ||
		payload.ExpiryDate != rec.ExpiryDate {
		t.Errorf("round trip lost fields: %+v vs %+v", payload, rec)
	}
}

func TestUpdatePayloadIncludesOnlySetFields(t *testing.T) {
	name := "New Name"
	fields := updatePayload(entity.GiftCardUpdate{RecipientName: &name})
	if len(fields) != 1 {
		t.Fatalf("payload has %d fields, want 1: %v", len(fields), fields)
	}
	if fields["customer_name"] != "New Name" {
		t.Errorf("customer_name = %v", fields["customer_name"])
	}
}
