package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	cycleSessionTTL    = 30 * 24 * time.Hour
	cycleSessionIssuer = "cyclecast"
	cycleSessionInfo   = "cyclecast.session.v1"
)

var errInvalidCycleSession = errors.New("invalid cycle session")

// cycleSessionState is the caller input kept between requests. Day is zero
// when the caller let the server derive it from today's date.
type cycleSessionState struct {
	LastPeriodStart string
	CycleLength     int
	Day             int
	Irregular       bool
}

type cycleSessionClaims struct {
	LastPeriodStart string `json:"lps"`
	CycleLength     int    `json:"cl"`
	Day             int    `json:"day,omitempty"`
	Irregular       bool   `json:"irr,omitempty"`
	jwt.RegisteredClaims
}

type cycleSessionCodec struct {
	key []byte
}

func newCycleSessionCodec(secretKey []byte) (*cycleSessionCodec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("session secret key is required")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte(cycleSessionInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &cycleSessionCodec{key: key}, nil
}

func (codec *cycleSessionCodec) encode(state cycleSessionState, now time.Time) (string, error) {
	claims := cycleSessionClaims{
		LastPeriodStart: state.LastPeriodStart,
		CycleLength:     state.CycleLength,
		Day:             state.Day,
		Irregular:       state.Irregular,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cycleSessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cycleSessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(codec.key)
}

func (codec *cycleSessionCodec) decode(raw string, now time.Time) (cycleSessionState, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return cycleSessionState{}, errInvalidCycleSession
	}

	claims := &cycleSessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return codec.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cycleSessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return cycleSessionState{}, errInvalidCycleSession
	}

	return cycleSessionState{
		LastPeriodStart: claims.LastPeriodStart,
		CycleLength:     claims.CycleLength,
		Day:             claims.Day,
		Irregular:       claims.Irregular,
	}, nil
}
