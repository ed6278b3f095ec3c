package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyServiceID     = errors.New("service id cannot be empty")
	ErrEmptyServiceName   = errors.New("service name cannot be empty")
	ErrServiceNameTooLong = errors.New("service name is too long (max 255 characters)")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidDuration    = errors.New("service duration must be positive")
	ErrUnknownService     = errors.New("unknown service")
	ErrDuplicateService   = errors.New("duplicate service id")
)

const MaxServiceNameLength = 255

// Service is a bookable treatment such as a classic full set or a refill.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	DurationMin int    `json:"durationMin"`
}

func (s Service) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyServiceID
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return ErrEmptyServiceName
	}
	if len(name) > MaxServiceNameLength {
		return ErrServiceNameTooLong
	}
	if s.PriceCents < 0 {
		return ErrNegativePrice
	}
	if s.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

type Catalog []Service

func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, s := range c {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return ErrDuplicateService
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Lookup resolves ids in request order.
func (c Catalog) Lookup(ids []string) ([]Service, error) {
	out := make([]Service, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, s := range c {
			if s.ID == id {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownService
		}
	}
	return out, nil
}
