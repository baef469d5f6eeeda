package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const oauthStateCookie = "oauth_state"

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleCallbackURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// googleLoginHandler starts the OAuth flow with a random state pinned in a
// short-lived cookie.
func googleLoginHandler(c *gin.Context) {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google login is not configured"})
		return
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}
	state := hex.EncodeToString(b)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", cfg.Production(), true)
	c.Redirect(http.StatusTemporaryRedirect, googleOAuthConfig().AuthCodeURL(state))
}

// googleCallbackHandler finishes the flow: exchange the code, fetch the
// profile, link or create the account, set the session cookie and hand the
// browser back to the SPA. Any failure redirects to the login page.
func googleCallbackHandler(c *gin.Context) {
	loginURL := cfg.ClientURL() + "/login"

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		log.Printf("google oauth: state mismatch")
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", cfg.Production(), true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	conf := googleOAuthConfig()
	ctx := c.Request.Context()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		log.Printf("google oauth: code exchange failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		log.Printf("google oauth: userinfo service failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil || info.Email == "" {
		log.Printf("google oauth: userinfo fetch failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	user, err := findOrCreateGoogleUser(info.Id, info.Email, info.Name, info.Picture)
	if err != nil {
		log.Printf("google oauth: account linking failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}

	token, err := signToken(user)
	if err != nil {
		log.Printf("google oauth: token signing failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, loginURL)
		return
	}
	setAuthCookie(c, token)
	c.Redirect(http.StatusTemporaryRedirect, cfg.ClientURL()+"/dashboard")
}
