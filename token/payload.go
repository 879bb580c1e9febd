package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Audience names this service in the tokens it accepts.
const Audience = "items-admin"

// clockSkew is how far ahead of this host an issuer's clock may run.
const clockSkew = 30 * time.Second

var (
	ErrExpired         = errors.New("token has expired")
	ErrInvalidAudience = errors.New("token was not issued for this service")
	ErrNotYetValid     = errors.New("token is not valid yet")
)

// Payload identifies the admin behind a bulk upload request.
type Payload struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Audience  string    `json:"aud"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func NewPayload(email string, duration time.Duration) (*Payload, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if duration <= 0 {
		return nil, errors.New("duration must be positive")
	}

	issuedAt := time.Now().UTC()
	return &Payload{
		ID:        uuid.New(),
		Email:     email,
		Audience:  Audience,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(duration),
	}, nil
}

func (p *Payload) Valid() error {
	now := time.Now()
	switch {
	case p.Audience != Audience:
		return ErrInvalidAudience
	case now.After(p.ExpiredAt):
		return ErrExpired
	case p.IssuedAt.After(now.Add(clockSkew)):
		return ErrNotYetValid
	}
	return nil
}
