package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestPasetoMaker_RoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	tok, err := maker.CreateToken("admin@example.com", time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", payload.Email)
	assert.Equal(t, Audience, payload.Audience)
	assert.WithinDuration(t, payload.IssuedAt.Add(time.Minute), payload.ExpiredAt, time.Second)
}

func TestPasetoMaker_RejectsExpiredToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)
	pm := maker.(*PasetoMaker)

	payload := &Payload{Email: "admin@example.com", Audience: Audience, IssuedAt: time.Now().Add(-time.Hour), ExpiredAt: time.Now().Add(-time.Minute)}
	tok, err := pm.paseto.Encrypt(pm.symmetricKey, payload, Audience)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestPasetoMaker_RejectsOtherAudiences(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)
	pm := maker.(*PasetoMaker)
	now := time.Now()

	foreign := &Payload{Email: "admin@example.com", Audience: "planning", IssuedAt: now, ExpiredAt: now.Add(time.Minute)}
	tok, err := pm.paseto.Encrypt(pm.symmetricKey, foreign, Audience)
	require.NoError(t, err)
	_, err = maker.VerifyToken(tok)
	assert.ErrorIs(t, err, ErrInvalidAudience)

	ours := &Payload{Email: "admin@example.com", Audience: Audience, IssuedAt: now, ExpiredAt: now.Add(time.Minute)}
	tok, err = pm.paseto.Encrypt(pm.symmetricKey, ours, nil)
	require.NoError(t, err)
	_, err = maker.VerifyToken(tok)
	assert.ErrorIs(t, err, ErrInvalidAudience)
}

func TestPayload_RejectsTokenIssuedInTheFuture(t *testing.T) {
	issued := time.Now().Add(time.Hour)
	p := &Payload{Email: "admin@example.com", Audience: Audience, IssuedAt: issued, ExpiredAt: issued.Add(time.Hour)}
	assert.ErrorIs(t, p.Valid(), ErrNotYetValid)

	p.IssuedAt = time.Now().Add(10 * time.Second)
	assert.NoError(t, p.Valid())
}

func TestPasetoMaker_RejectsForeignKey(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)
	other, err := NewPasetoMaker(strings.Repeat("z", 32))
	require.NoError(t, err)

	tok, err := other.CreateToken("admin@example.com", time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tok)
	assert.Error(t, err)
}

func TestNewPasetoMaker_KeySize(t *testing.T) {
	_, err := NewPasetoMaker("short")
	assert.Error(t, err)
}
