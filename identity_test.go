package main

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "abc", normalizeID(" abc "))
	assert.Equal(t, "42", normalizeID(float64(42)))
	assert.Equal(t, "7", normalizeID(7))
	assert.Equal(t, "", normalizeID(nil))
	assert.Equal(t, "", normalizeID(12.5))
	assert.Equal(t, "", normalizeID(map[string]any{"x": 1}))
	assert.Equal(t, "", normalizeID("   "))
}

func TestResolveOwnerDirectFields(t *testing.T) {
	for _, field := range []string{"id", "_id", "userId", "sub"} {
		claims := jwt.MapClaims{field: "user-1"}
		id, merged, err := resolveOwner(claims)
		require.NoError(t, err, field)
		assert.Equal(t, "user-1", id, field)
		assert.Equal(t, "user-1", merged["id"], field)
	}
}

func TestResolveOwnerPriorityOrder(t *testing.T) {
	// direct id beats everything else
	id, _, err := resolveOwner(jwt.MapClaims{
		"id":   "primary",
		"_id":  "secondary",
		"sub":  "tertiary",
		"user": map[string]any{"id": "nested"},
	})
	require.NoError(t, err)
	assert.Equal(t, "primary", id)

	// _id beats userId and sub
	id, _, err = resolveOwner(jwt.MapClaims{"_id": "a", "userId": "b", "sub": "c"})
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	// nested user fields come after all direct fields
	id, _, err = resolveOwner(jwt.MapClaims{
		"sub":  "direct-sub",
		"user": map[string]any{"id": "nested"},
	})
	require.NoError(t, err)
	assert.Equal(t, "direct-sub", id)

	// data fields come last
	id, _, err = resolveOwner(jwt.MapClaims{
		"user": map[string]any{"userId": "nested"},
		"data": map[string]any{"id": "from-data"},
	})
	require.NoError(t, err)
	assert.Equal(t, "nested", id)
}

func TestResolveOwnerNestedShapes(t *testing.T) {
	id, merged, err := resolveOwner(jwt.MapClaims{
		"user": map[string]any{"_id": "u-9", "name": "Nested Name"},
	})
	require.NoError(t, err)
	assert.Equal(t, "u-9", id)
	// nested user fields surface in the merged payload
	assert.Equal(t, "Nested Name", merged["name"])

	id, _, err = resolveOwner(jwt.MapClaims{
		"data": map[string]any{"userId": float64(314)},
	})
	require.NoError(t, err)
	assert.Equal(t, "314", id)
}

func TestResolveOwnerNumericClaim(t *testing.T) {
	id, _, err := resolveOwner(jwt.MapClaims{"id": float64(12)})
	require.NoError(t, err)
	assert.Equal(t, "12", id)
}

func TestResolveOwnerNoIdentifiableUser(t *testing.T) {
	_, _, err := resolveOwner(jwt.MapClaims{"role": "admin"})
	assert.ErrorIs(t, err, errNoIdentifiableUser)

	// whitespace-only ids do not count
	_, _, err = resolveOwner(jwt.MapClaims{"id": "   "})
	assert.ErrorIs(t, err, errNoIdentifiableUser)
}

func TestMergeClaimsTopLevelWins(t *testing.T) {
	merged := mergeClaims(jwt.MapClaims{
		"name": "Top",
		"user": map[string]any{"name": "Nested", "extra": "kept"},
	})
	assert.Equal(t, "Top", merged["name"])
	assert.Equal(t, "kept", merged["extra"])
}

func TestOwnerRefFor(t *testing.T) {
	ref := ownerRefFor("17")
	require.NotNil(t, ref.UserID)
	assert.Equal(t, uint(17), *ref.UserID)
	assert.Equal(t, "17", ref.Key)

	ref = ownerRefFor(" opaque-key ")
	assert.Nil(t, ref.UserID)
	assert.Equal(t, "opaque-key", ref.Key)

	// zero is not a valid user reference
	ref = ownerRefFor("0")
	assert.Nil(t, ref.UserID)
}
