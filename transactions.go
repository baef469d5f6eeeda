package main

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/roxy-k/nest-egg/models"

	"github.com/gin-gonic/gin"
)

var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type transactionRequest struct {
	Date       string  `json:"date" binding:"required"`
	CategoryID string  `json:"categoryId" binding:"required"`
	Type       string  `json:"type" binding:"required,oneof=income expense"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

func (r *transactionRequest) validate() (string, bool) {
	r.Date = strings.TrimSpace(r.Date)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	if !dateRE.MatchString(r.Date) {
		return "date must be YYYY-MM-DD", false
	}
	if r.CategoryID == "" {
		return "categoryId is required", false
	}
	return "", true
}

func listTransactionsHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	items := []models.Transaction{}
	if err := owner.Scope(db).Order("date desc, created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions."})
		return
	}
	c.JSON(http.StatusOK, items)
}

func createTransactionHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	tx := models.Transaction{
		OwnerKey:   owner.Key,
		UserID:     owner.UserID,
		Date:       req.Date,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Amount:     req.Amount,
	}
	if err := db.Create(&tx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction."})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func updateTransactionHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	var tx models.Transaction
	if err := owner.Scope(db).First(&tx, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	tx.Date = req.Date
	tx.CategoryID = req.CategoryID
	tx.Type = req.Type
	tx.Amount = req.Amount
	if err := db.Save(&tx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction."})
		return
	}
	c.JSON(http.StatusOK, tx)
}

// Hard delete; transactions have no soft-delete.
func deleteTransactionHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	res := owner.Scope(db).Where("id = ?", uint(id)).Delete(&models.Transaction{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
