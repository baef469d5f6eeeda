package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine) {
	r.GET("/health", healthHandler)
	r.GET("/api/health", healthHandler)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", registerHandler)
	auth.POST("/login", loginHandler)
	auth.POST("/logout", logoutHandler)
	auth.GET("/me", meHandler)
	auth.GET("/google", googleLoginHandler)
	auth.GET("/google/callback", googleCallbackHandler)

	protected := api.Group("", authRequired())
	protected.GET("/categories", listCategoriesHandler)
	protected.GET("/categories/all", listCategoriesHandler)
	protected.POST("/categories", createCategoryHandler)
	protected.DELETE("/categories/:id", deleteCategoryHandler)

	protected.GET("/transactions", listTransactionsHandler)
	protected.POST("/transactions", createTransactionHandler)
	protected.PUT("/transactions/:id", updateTransactionHandler)
	protected.DELETE("/transactions/:id", deleteTransactionHandler)

	protected.GET("/budgets", listBudgetsHandler)
	protected.POST("/budgets", createBudgetHandler)
	protected.PUT("/budgets/:id", updateBudgetHandler)
	protected.DELETE("/budgets/:id", deleteBudgetHandler)

	// maintenance routes stay off the public surface in production
	if !cfg.Production() {
		protected.POST("/seed", seedHandler)
		protected.POST("/reset", resetHandler)
		protected.DELETE("/reset", resetHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// authRequired verifies the request token and resolves the canonical owner id
// from whatever payload shape the token carries.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}
		claims, err := parseToken(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}
		id, merged, err := resolveOwner(claims)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
			c.Abort()
			return
		}
		c.Set("ownerKey", id)
		c.Set("claims", merged)
		c.Next()
	}
}

// currentOwner returns the caller's owner reference set by authRequired.
func currentOwner(c *gin.Context) (OwnerRef, bool) {
	v, ok := c.Get("ownerKey")
	if !ok {
		return OwnerRef{}, false
	}
	key, _ := v.(string)
	if strings.TrimSpace(key) == "" {
		return OwnerRef{}, false
	}
	return ownerRefFor(key), true
}

func registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"max=120"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(req.Email, req.Password, req.Name)
	if err != nil {
		if err == errEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}
	token, err := signToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": userPayload(user)})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := signToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}

func logoutHandler(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// meHandler answers from the token alone, no store access.
func meHandler(c *gin.Context) {
	raw := tokenFromRequest(c)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	claims, err := parseToken(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    claims["id"],
		"email": claims["email"],
		"name":  claims["name"],
	})
}
