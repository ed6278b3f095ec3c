package booking

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"lashdiary/internal/domain/catalog"
)

const (
	minTransfereeNameLen  = 2
	minTransfereePhoneLen = 7
	manageTokenBytes      = 32
)

type Contact struct {
	name  string
	email string
	phone string
}

// NewContact validates the contact captured at booking time.
func NewContact(name, email, phone string) (Contact, error) {
	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return Contact{}, ErrMissingContact
	}
	if !strings.Contains(email, "@") {
		return Contact{}, ErrInvalidEmail
	}
	return Contact{name: name, email: email, phone: phone}, nil
}

// NewTransferContact applies the stricter rules for handing a booking to someone else.
func NewTransferContact(name, email, phone string) (Contact, error) {
	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)
	if len([]rune(name)) < minTransfereeNameLen ||
		!strings.Contains(email, "@") ||
		len(phone) < minTransfereePhoneLen {
		return Contact{}, ErrInvalidTransferee
	}
	return Contact{name: name, email: email, phone: phone}, nil
}

func ReconstructContact(name, email, phone string) Contact {
	return Contact{name: name, email: email, phone: phone}
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }

// ServiceLine snapshots a catalog service at booking time.
type ServiceLine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	DurationMin int    `json:"durationMin"`
}

func LinesFromCatalog(services []catalog.Service) []ServiceLine {
	lines := make([]ServiceLine, len(services))
	for i, s := range services {
		lines[i] = ServiceLine{ID: s.ID, Name: s.Name, PriceCents: s.PriceCents, DurationMin: s.DurationMin}
	}
	return lines
}

// Pricing is captured once at creation and never recomputed.
type Pricing struct {
	OriginalCents int64  `json:"originalCents"`
	DiscountCents int64  `json:"discountCents"`
	FinalCents    int64  `json:"finalCents"`
	DepositCents  int64  `json:"depositCents"`
	PromoCode     string `json:"promoCode,omitempty"`
}

func NewPricing(lines []ServiceLine, promo *catalog.Promo, depositPercent int) Pricing {
	var original int64
	for _, l := range lines {
		original += l.PriceCents
	}

	p := Pricing{OriginalCents: original}
	if promo != nil {
		p.DiscountCents = promo.DiscountFor(original)
		p.PromoCode = promo.Code
	}
	p.FinalCents = original - p.DiscountCents

	if depositPercent > 0 {
		if depositPercent > 100 {
			depositPercent = 100
		}
		// round up to the next cent
		p.DepositCents = (p.FinalCents*int64(depositPercent) + 99) / 100
	}
	return p
}

// RescheduleEntry is one append-only history record.
type RescheduleEntry struct {
	Action       Action    `json:"action"`
	FromDate     string    `json:"fromDate"`
	FromTimeSlot time.Time `json:"fromTimeSlot"`
	ToDate       string    `json:"toDate"`
	ToTimeSlot   time.Time `json:"toTimeSlot"`
	Actor        Actor     `json:"actor"`
	At           time.Time `json:"at"`
	Notes        string    `json:"notes"`
}

// GenerateManageToken returns the plaintext token handed to the client and the
// hash that is persisted.
func GenerateManageToken() (token, hash string, err error) {
	buf := make([]byte, manageTokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashManageToken(token), nil
}

func HashManageToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
