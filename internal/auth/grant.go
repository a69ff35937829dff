package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmynk/officeplan/internal/models"
)

var ErrInvalidGrant = errors.New("invalid, expired or already used unlock grant")

// Operation names the kind of mutation a grant authorizes.
type Operation string

const (
	OpActivate Operation = "activate"
	OpUpsert   Operation = "upsert"
	OpDelete   Operation = "delete"
)

// Action is the mutation a grant authorizes. Status is the target status of
// an upsert and empty otherwise.
type Action struct {
	Op     Operation
	Status models.Status
}

// GrantClaims authorize one mutation of one entry by one device.
type GrantClaims struct {
	EmployeeID string `json:"eid"`
	Date       string `json:"date"`
	DeviceID   string `json:"dev"`
	Op         string `json:"op"`
	Status     string `json:"st,omitempty"`
	jwt.RegisteredClaims
}

// GrantIssuer issues and redeems single-use unlock grants after a successful
// password challenge. A grant is bound to an entry and a device, expires
// after ttl and can be redeemed exactly once.
type GrantIssuer struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	redeemed map[string]time.Time // grant ID -> expiry
}

// NewGrantIssuer creates an issuer. secretKey should be a strong random string;
// grants do not survive a change of key.
func NewGrantIssuer(secretKey string, ttl time.Duration) *GrantIssuer {
	return &GrantIssuer{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
		redeemed:  make(map[string]time.Time),
	}
}

// Issue creates a grant for deviceID to perform action on the entry at key once.
func (g *GrantIssuer) Issue(key models.EntryKey, deviceID string, action Action) (string, time.Time, error) {
	now := g.now()
	expires := now.Add(g.ttl)
	claims := &GrantClaims{
		EmployeeID: key.EmployeeID,
		Date:       key.Date,
		DeviceID:   deviceID,
		Op:         string(action.Op),
		Status:     string(action.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign grant: %w", err)
	}
	return signed, expires, nil
}

// Redeem validates a grant for key, deviceID and action and reserves it so
// it cannot be redeemed again. When the authorized mutation then fails, the
// caller must call release to make the grant usable for a retry.
func (g *GrantIssuer) Redeem(tokenString string, key models.EntryKey, deviceID string, action Action) (release func(), err error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&GrantClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return g.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrant, err)
	}

	claims, ok := token.Claims.(*GrantClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidGrant
	}
	if claims.EmployeeID != key.EmployeeID || claims.Date != key.Date || claims.DeviceID != deviceID {
		return nil, fmt.Errorf("%w: grant issued for a different entry or device", ErrInvalidGrant)
	}
	if claims.Op != string(action.Op) || claims.Status != string(action.Status) {
		return nil, fmt.Errorf("%w: grant issued for a different operation", ErrInvalidGrant)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for id, exp := range g.redeemed {
		if now.After(exp) {
			delete(g.redeemed, id)
		}
	}
	if _, used := g.redeemed[claims.ID]; used {
		return nil, fmt.Errorf("%w: grant already used", ErrInvalidGrant)
	}
	g.redeemed[claims.ID] = claims.ExpiresAt.Time

	id := claims.ID
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.redeemed, id)
	}, nil
}
