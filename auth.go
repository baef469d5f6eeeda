package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/roxy-k/nest-egg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenCookie   = "token"
	tokenLifetime = 7 * 24 * time.Hour
	bcryptCost    = 12
)

var errEmailTaken = errors.New("email is already registered")

// RegisterUser creates a local account. Email is unique case-insensitively;
// the store's unique index settles the pre-check race.
func RegisterUser(email, password, name string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, fmt.Errorf("email required")
	}
	if len(password) < 6 {
		return models.User{}, fmt.Errorf("password must be at least 6 characters")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return models.User{}, errEmailTaken
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hashed, Provider: "local"}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return models.User{}, errEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a local login. Unknown email and wrong password are
// indistinguishable to the caller.
func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if len(user.PasswordHash) == 0 {
		// federated account without a password
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func userPayload(u models.User) gin.H {
	return gin.H{
		"id":    strconv.FormatUint(uint64(u.ID), 10),
		"email": u.Email,
		"name":  u.Name,
	}
}

func signToken(u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    strconv.FormatUint(uint64(u.ID), 10),
		"email": u.Email,
		"name":  u.Name,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// setAuthCookie writes the session cookie. Production runs cross-site behind
// HTTPS, so it needs Secure + SameSite=None; development stays on Lax.
func setAuthCookie(c *gin.Context, token string) {
	if cfg.Production() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(tokenCookie, token, int(tokenLifetime/time.Second), "/", "", cfg.Production(), true)
}

func clearAuthCookie(c *gin.Context) {
	if cfg.Production() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(tokenCookie, "", -1, "/", "", cfg.Production(), true)
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if t := strings.TrimSpace(h[7:]); t != "" {
			return t
		}
	}
	if t, err := c.Cookie(tokenCookie); err == nil {
		return t
	}
	return ""
}

func parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// findOrCreateGoogleUser links a Google profile to an account: first by the
// stored Google id, then by email, creating a passwordless account otherwise.
func findOrCreateGoogleUser(googleID, email, name, avatar string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, fmt.Errorf("no email from Google")
	}
	var user models.User
	err := db.Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("email = ?", email).First(&user).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:    email,
			Name:     name,
			GoogleID: googleID,
			Avatar:   avatar,
			Provider: "google",
		}
		if err := db.Create(&user).Error; err != nil {
			return models.User{}, err
		}
		return user, nil
	}
	if err != nil {
		return models.User{}, err
	}

	changed := false
	if user.GoogleID == "" {
		user.GoogleID = googleID
		changed = true
	}
	if name != "" && user.Name != name {
		user.Name = name
		changed = true
	}
	if avatar != "" && user.Avatar != avatar {
		user.Avatar = avatar
		changed = true
	}
	if user.Provider == "" {
		user.Provider = "google"
		changed = true
	}
	if changed {
		if err := db.Save(&user).Error; err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}
