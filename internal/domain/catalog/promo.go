package catalog

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidPromoCode       = errors.New("invalid promo code format")
	ErrPromoExpired           = errors.New("promo code has expired")
	ErrPromoNotYetValid       = errors.New("promo code is not yet valid")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrAmbiguousDiscount      = errors.New("discount can only be either fixed amount or percentage, not both")
	ErrMissingDiscount        = errors.New("discount must have either fixed amount or percentage")
	ErrUnknownPromo           = errors.New("unknown promo code")
)

var promoCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

func NormalizePromoCode(code string) (string, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !promoCodeRegex.MatchString(code) {
		return "", ErrInvalidPromoCode
	}
	return code, nil
}

type Promo struct {
	Code           string     `json:"code"`
	AmountOffCents *int64     `json:"amountOffCents,omitempty"`
	PercentOff     *float64   `json:"percentOff,omitempty"`
	ValidFrom      *time.Time `json:"validFrom,omitempty"`
	ValidTo        *time.Time `json:"validTo,omitempty"`
}

func (p Promo) Validate() error {
	if _, err := NormalizePromoCode(p.Code); err != nil {
		return err
	}
	switch {
	case p.AmountOffCents != nil && p.PercentOff != nil:
		return ErrAmbiguousDiscount
	case p.AmountOffCents == nil && p.PercentOff == nil:
		return ErrMissingDiscount
	case p.AmountOffCents != nil && *p.AmountOffCents < 0:
		return ErrInvalidDiscountAmount
	case p.PercentOff != nil && (*p.PercentOff < 0 || *p.PercentOff > 100):
		return ErrInvalidDiscountPercent
	}
	return nil
}

func (p Promo) ValidateUsage(t time.Time) error {
	if p.ValidFrom != nil && t.Before(*p.ValidFrom) {
		return ErrPromoNotYetValid
	}
	if p.ValidTo != nil && t.After(*p.ValidTo) {
		return ErrPromoExpired
	}
	return nil
}

// DiscountFor never discounts more than the base price.
func (p Promo) DiscountFor(baseCents int64) int64 {
	var off int64
	if p.PercentOff != nil {
		off = int64(float64(baseCents) * (*p.PercentOff / 100.0))
	} else if p.AmountOffCents != nil {
		off = *p.AmountOffCents
	}
	if off > baseCents {
		return baseCents
	}
	if off < 0 {
		return 0
	}
	return off
}

type Promos []Promo

func (ps Promos) Find(code string) (Promo, error) {
	normalized, err := NormalizePromoCode(code)
	if err != nil {
		return Promo{}, err
	}
	for _, p := range ps {
		if strings.EqualFold(p.Code, normalized) {
			return p, nil
		}
	}
	return Promo{}, ErrUnknownPromo
}
