package enum

// CardStatus represents the redeemability of a gift card. The backend is
// authoritative for card status; these values mirror its vocabulary.
type CardStatus string

const (
	CardStatusActive   CardStatus = "Active"
	CardStatusInactive CardStatus = "Inactive"
	CardStatusExpired  CardStatus = "Expired"
)

// Valid reports whether the status is one of the known card states.
func (s CardStatus) Valid() bool {
	return s == CardStatusActive || s == CardStatusInactive || s == CardStatusExpired
}

func (s CardStatus) String() string {
	return string(s)
}

// CardIssuer identifies who funded a gift card.
type CardIssuer string

const (
	CardIssuerStore   CardIssuer = "Store"
	CardIssuerPartner CardIssuer = "Partner"
)

func (i CardIssuer) Valid() bool {
	return i == CardIssuerStore || i == CardIssuerPartner
}

func (i CardIssuer) String() string {
	return string(i)
}
