package main

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/roxy-k/nest-egg/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// idClaimPaths lists the claim locations that may carry the user id, in
// priority order. Tokens issued over the years used several shapes; the order
// decides which field wins when more than one is present, so it must not be
// reshuffled.
var idClaimPaths = [][]string{
	{"id"},
	{"_id"},
	{"userId"},
	{"sub"},
	{"user", "id"},
	{"user", "_id"},
	{"user", "userId"},
	{"data", "id"},
	{"data", "_id"},
	{"data", "userId"},
}

var errNoIdentifiableUser = errors.New("no identifiable user in token payload")

// normalizeID turns a claim value of whatever type the encoder used into a
// trimmed string, or "" when it cannot represent an id.
func normalizeID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t != math.Trunc(t) {
			return ""
		}
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	}
	return ""
}

func lookupClaim(claims map[string]any, path []string) any {
	cur := claims
	for i, field := range path {
		if i == len(path)-1 {
			return cur[field]
		}
		next, ok := cur[field].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// mergeClaims flattens a nested "user" sub-object under the top-level claims,
// top-level fields winning, so downstream code sees one payload shape.
func mergeClaims(claims jwt.MapClaims) map[string]any {
	merged := make(map[string]any, len(claims)+2)
	if nested, ok := claims["user"].(map[string]any); ok {
		for k, v := range nested {
			merged[k] = v
		}
	}
	for k, v := range claims {
		merged[k] = v
	}
	return merged
}

// resolveOwner derives the canonical owner id from a verified token payload.
// The claim paths are tried in order; when none yields an id, a single store
// lookup by email (then by a numeric legacy sub) may recover it. That slower
// path is tolerated because auth runs once per request, not in a hot loop.
func resolveOwner(claims jwt.MapClaims) (string, map[string]any, error) {
	merged := mergeClaims(claims)

	for _, path := range idClaimPaths {
		if id := normalizeID(lookupClaim(claims, path)); id != "" {
			merged["id"] = id
			return id, merged, nil
		}
	}

	if email, _ := merged["email"].(string); strings.TrimSpace(email) != "" {
		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
		if err == nil {
			id := strconv.FormatUint(uint64(user.ID), 10)
			merged["id"] = id
			if name, _ := merged["name"].(string); name == "" {
				merged["name"] = user.Name
			}
			return id, merged, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", merged, err
		}
	}

	if sub := normalizeID(merged["sub"]); sub != "" {
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
			var user models.User
			err := db.First(&user, uint(n)).Error
			if err == nil {
				id := strconv.FormatUint(uint64(user.ID), 10)
				merged["id"] = id
				if email, _ := merged["email"].(string); email == "" {
					merged["email"] = user.Email
				}
				if name, _ := merged["name"].(string); name == "" {
					merged["name"] = user.Name
				}
				return id, merged, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return "", merged, err
			}
		}
	}

	return "", merged, errNoIdentifiableUser
}

// OwnerRef is the canonical owner of a row: always an opaque string key, plus
// a numeric user reference when the key is id-shaped. Rows written before the
// owner_key column existed carry only the user reference, so queries must
// match either representation.
type OwnerRef struct {
	Key    string
	UserID *uint
}

func ownerRefFor(key string) OwnerRef {
	key = strings.TrimSpace(key)
	ref := OwnerRef{Key: key}
	if n, err := strconv.ParseUint(key, 10, 64); err == nil && n > 0 {
		id := uint(n)
		ref.UserID = &id
	}
	return ref
}

// Scope restricts a query to rows owned by this owner, bridging the string
// key and the user reference. Apply it at every query boundary.
func (o OwnerRef) Scope(tx *gorm.DB) *gorm.DB {
	if o.UserID != nil {
		return tx.Where("owner_key = ? OR user_id = ?", o.Key, *o.UserID)
	}
	return tx.Where("owner_key = ?", o.Key)
}
