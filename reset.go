package main

import (
	"log"
	"net/http"

	"github.com/roxy-k/nest-egg/models"

	"github.com/gin-gonic/gin"
)

// resetHandler wipes the caller's transactions, budgets and categories and
// reports how many of each went away. Not mounted in production.
func resetHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}

	tx := owner.Scope(db).Delete(&models.Transaction{})
	b := owner.Scope(db).Delete(&models.Budget{})
	cat := owner.Scope(db).Delete(&models.Category{})
	for _, res := range []error{tx.Error, b.Error, cat.Error} {
		if res != nil {
			log.Printf("reset failed for owner %s: %v", owner.Key, res)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "reset_failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"deleted": gin.H{
			"transactions": tx.RowsAffected,
			"budgets":      b.RowsAffected,
			"categories":   cat.RowsAffected,
		},
	})
}
