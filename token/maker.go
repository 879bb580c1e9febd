package token

import "time"

// Maker issues and checks the access_token cookie. This service only
// verifies; tokens are issued by the admin login service, which shares the
// symmetric key.
type Maker interface {
	CreateToken(email string, duration time.Duration) (string, error)
	VerifyToken(token string) (*Payload, error)
}
