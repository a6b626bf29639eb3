package service

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/domain/enum"
	"github.com/nashon/pos-ledger-api/pkg/apperror"
)

// GiftCardBackend is the slice of the backend client the service needs.
type GiftCardBackend interface {
	ListGiftCards(ctx context.Context) ([]entity.GiftCard, error)
	CreateGiftCard(ctx context.Context, card entity.GiftCard) error
	UpdateGiftCard(ctx context.Context, id string, upd entity.GiftCardUpdate) error
	PostCardAction(ctx context.Context, cardNumber, actionType string, amount float64) error
}

// GiftCardService reconciles the backend's gift card collection with a
// local cache. The backend is the system of record: every mutation is
// followed by a full refetch rather than an optimistic local merge, and
// a failed fetch resets the cache to empty instead of serving stale
// cards.
type GiftCardService struct {
	mu      sync.Mutex
	backend GiftCardBackend
	cards   []entity.GiftCard
}

// NewGiftCardService creates a gift card service over the backend client.
func NewGiftCardService(backend GiftCardBackend) *GiftCardService {
	return &GiftCardService{backend: backend}
}

// IssueGiftCardInput is the caller-supplied part of a new card.
type IssueGiftCardInput struct {
	CardNumber     string
	RecipientName  string
	RecipientEmail string
	RecipientPhone string
	Issuer         enum.CardIssuer
	PartnerName    string
	Amount         float64
	ExpiryDate     string
}

// Refresh refetches the full collection. On failure the cache is reset
// to empty — fail-safe-empty, never fail-safe-stale.
func (s *GiftCardService) Refresh(ctx context.Context) error {
	cards, err := s.backend.ListGiftCards(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.cards = nil
		log.Printf("gift cards: refresh failed, cache reset: %v", err)
		return err
	}
	s.cards = cards
	return nil
}

// List returns a copy of the cached collection in backend order.
func (s *GiftCardService) List() []entity.GiftCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.GiftCard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Get returns the cached card with the given id.
func (s *GiftCardService) Get(id string) (*entity.GiftCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			card := s.cards[i]
			return &card, nil
		}
	}
	return nil, apperror.NewNotFoundError("Gift card")
}

// Issue creates a card on the backend and refreshes the collection. A
// missing card number is pre-filled client-side.
func (s *GiftCardService) Issue(ctx context.Context, input IssueGiftCardInput) error {
	if input.Amount <= 0 {
		return apperror.NewBadRequestError("Gift card amount must be positive")
	}
	cardNumber := input.CardNumber
	if cardNumber == "" {
		cardNumber = NewCardNumber()
	}
	issuer := input.Issuer
	if issuer == "" {
		issuer = enum.CardIssuerStore
	}
	if !issuer.Valid() {
		return apperror.NewBadRequestError("Invalid issuer")
	}

	card := entity.GiftCard{
		CardNumber:     cardNumber,
		RecipientName:  input.RecipientName,
		RecipientEmail: input.RecipientEmail,
		RecipientPhone: input.RecipientPhone,
		Issuer:         issuer,
		PartnerName:    input.PartnerName,
		Amount:         input.Amount,
		ExpiryDate:     input.ExpiryDate,
	}
	if err := s.backend.CreateGiftCard(ctx, card); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Update patches the backend-mutable subset of a card's fields and
// refreshes. Card number and balance cannot change through this path.
func (s *GiftCardService) Update(ctx context.Context, id string, upd entity.GiftCardUpdate) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.backend.UpdateGiftCard(ctx, id, upd); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Redeem draws down a card's balance. The card must exist locally, be
// Active and cover the amount — checked before any network call as a
// fast-fail guard; the backend remains the final authority. The
// returned card is the pre-refresh local snapshot, a best-effort echo:
// the refresh that follows is what converges local state.
func (s *GiftCardService) Redeem(ctx context.Context, cardNumber string, amount float64) (*entity.GiftCard, error) {
	card, err := s.requireActiveCard(cardNumber, amount)
	if err != nil {
		return nil, err
	}
	if card.Balance < amount {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Insufficient balance: card holds %.2f, requested %.2f", card.Balance, amount))
	}
	if err := s.backend.PostCardAction(ctx, cardNumber, "redeem", amount); err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return card, nil
}

// Reload tops up a card's balance. Same preconditions as Redeem except
// no balance check.
func (s *GiftCardService) Reload(ctx context.Context, cardNumber string, amount float64) (*entity.GiftCard, error) {
	card, err := s.requireActiveCard(cardNumber, amount)
	if err != nil {
		return nil, err
	}
	if err := s.backend.PostCardAction(ctx, cardNumber, "reload", amount); err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return card, nil
}

// requireActiveCard validates the shared redeem/reload preconditions and
// returns a snapshot of the local card.
func (s *GiftCardService) requireActiveCard(cardNumber string, amount float64) (*entity.GiftCard, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].CardNumber == cardNumber {
			if s.cards[i].Status != enum.CardStatusActive {
				return nil, apperror.NewBadRequestError(
					fmt.Sprintf("Card %s is %s", cardNumber, s.cards[i].Status))
			}
			card := s.cards[i]
			return &card, nil
		}
	}
	return nil, apperror.NewNotFoundError("Gift card")
}

// NewCardNumber generates a client-side card number: GC followed by
// twelve zero-padded digits.
func NewCardNumber() string {
	return fmt.Sprintf("GC%012d", rand.Int64N(1_000_000_000_000))
}
