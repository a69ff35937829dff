package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/officeplan/internal/models"
)

var activate = Action{Op: OpActivate}

func newTestIssuer(now *time.Time) *GrantIssuer {
	g := NewGrantIssuer("test-secret-0123456789abcdef", 2*time.Minute)
	g.now = func() time.Time { return *now }
	return g
}

func TestGrant_SingleUse(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newTestIssuer(&now)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}

	token, expires, err := g.Issue(key, "device-b", activate)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Minute), expires)

	_, err = g.Redeem(token, key, "device-b", activate)
	require.NoError(t, err)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", activate)), ErrInvalidGrant)
}

func TestGrant_Binding(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newTestIssuer(&now)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}

	token, _, err := g.Issue(key, "device-b", activate)
	require.NoError(t, err)

	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-c", activate)), ErrInvalidGrant)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, models.EntryKey{EmployeeID: "2", Date: key.Date}, "device-b", activate)), ErrInvalidGrant)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, models.EntryKey{EmployeeID: "1", Date: "2024-03-21"}, "device-b", activate)), ErrInvalidGrant)

	// A rejected binding does not consume the grant.
	_, err = g.Redeem(token, key, "device-b", activate)
	assert.NoError(t, err)
}

func TestGrant_Expired(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newTestIssuer(&now)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}

	token, _, err := g.Issue(key, "device-b", activate)
	require.NoError(t, err)

	now = now.Add(3 * time.Minute)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", activate)), ErrInvalidGrant)
}

func TestGrant_ForeignKey(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}

	other := NewGrantIssuer("another-secret", time.Minute)
	other.now = func() time.Time { return now }
	token, _, err := other.Issue(key, "device-b", activate)
	require.NoError(t, err)

	assert.ErrorIs(t, redeemErr(newTestIssuer(&now).Redeem(token, key, "device-b", activate)), ErrInvalidGrant)
	assert.ErrorIs(t, redeemErr(newTestIssuer(&now).Redeem("not-a-token", key, "device-b", activate)), ErrInvalidGrant)
}

func redeemErr(_ func(), err error) error {
	return err
}

func TestGrant_BoundToAction(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newTestIssuer(&now)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}
	upsertPresent := Action{Op: OpUpsert, Status: models.StatusPresent}

	token, _, err := g.Issue(key, "device-b", upsertPresent)
	require.NoError(t, err)

	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", activate)), ErrInvalidGrant)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", Action{Op: OpDelete})), ErrInvalidGrant)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", Action{Op: OpUpsert, Status: models.StatusAbsent})), ErrInvalidGrant)

	_, err = g.Redeem(token, key, "device-b", upsertPresent)
	assert.NoError(t, err)
}

func TestGrant_ReleaseAllowsRetry(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	g := newTestIssuer(&now)
	key := models.EntryKey{EmployeeID: "1", Date: "2024-03-20"}

	token, _, err := g.Issue(key, "device-b", activate)
	require.NoError(t, err)

	release, err := g.Redeem(token, key, "device-b", activate)
	require.NoError(t, err)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", activate)), ErrInvalidGrant)

	release()
	_, err = g.Redeem(token, key, "device-b", activate)
	require.NoError(t, err)
	assert.ErrorIs(t, redeemErr(g.Redeem(token, key, "device-b", activate)), ErrInvalidGrant)
}
