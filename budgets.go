package main

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/roxy-k/nest-egg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The (owner, category, month) triple must map to at most one budget. The
// handlers below enforce that on both the create and update paths; the unique
// index on the triple is the final arbiter when two identical requests race.

var monthRE = regexp.MustCompile(`^(\d{4}-\d{2})(-\d{2})?$`)

const budgetConflictMsg = "Budget already exists for this category and month."

type budgetRequest struct {
	CategoryID string  `json:"categoryId" binding:"required"`
	Month      string  `json:"month" binding:"required"`
	Limit      float64 `json:"limit" binding:"required,gt=0"`
}

// normalizeMonth accepts YYYY-MM or a full date and truncates to year-month.
func normalizeMonth(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !monthRE.MatchString(s) {
		return "", false
	}
	return s[:7], true
}

// budgetKey derives the deterministic natural id for a budget.
func budgetKey(ownerKey, categoryID, month string) string {
	return strings.TrimSpace(ownerKey) + ":" + strings.TrimSpace(categoryID) + ":" + strings.TrimSpace(month)
}

func bindBudgetRequest(c *gin.Context) (budgetRequest, bool) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	month, ok := normalizeMonth(req.Month)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM or YYYY-MM-DD"})
		return req, false
	}
	req.Month = month
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	if req.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId is required"})
		return req, false
	}
	return req, true
}

func listBudgetsHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	items := []models.Budget{}
	if err := owner.Scope(db).Order("month desc, created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets."})
		return
	}
	c.JSON(http.StatusOK, items)
}

// createBudgetHandler treats a second POST for an occupied (category, month)
// as an update of the stored limit rather than a duplicate or an error.
func createBudgetHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	req, ok := bindBudgetRequest(c)
	if !ok {
		return
	}

	var existing models.Budget
	err := db.Where("owner_key = ? AND category_id = ? AND month = ?",
		owner.Key, req.CategoryID, req.Month).First(&existing).Error
	if err == nil {
		existing.Limit = req.Limit
		if owner.UserID != nil {
			existing.UserID = owner.UserID
		}
		if err := db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
			return
		}
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget."})
		return
	}

	budget := models.Budget{
		Key:        budgetKey(owner.Key, req.CategoryID, req.Month),
		OwnerKey:   owner.Key,
		UserID:     owner.UserID,
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Limit:      req.Limit,
	}
	if err := db.Create(&budget).Error; err != nil {
		if isUniqueConstraintError(err) {
			// lost the race between the lookup above and this insert
			c.JSON(http.StatusConflict, gin.H{"error": budgetConflictMsg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget."})
		return
	}
	c.JSON(http.StatusCreated, budget)
}

// updateBudgetHandler keeps the triple unique across renames. Moving a budget
// onto a (category, month) already held by another record merges into that
// record and deletes the original, so the returned id may differ from the one
// the client edited. Known quirk carried over for client compatibility.
func updateBudgetHandler(c *gin.Context) {
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
	req, ok := bindBudgetRequest(c)
	if !ok {
		return
	}

	var current models.Budget
	err = owner.Scope(db).First(&current, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The referenced id is stale (renamed or removed). If the requested
		// triple exists, merge into it and drop the stale reference.
		var fallback models.Budget
		ferr := db.Where("owner_key = ? AND category_id = ? AND month = ?",
			owner.Key, req.CategoryID, req.Month).First(&fallback).Error
		if ferr == nil {
			fallback.Limit = req.Limit
			if owner.UserID != nil {
				fallback.UserID = owner.UserID
			}
			if err := db.Save(&fallback).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
				return
			}
			db.Where("id = ? AND owner_key = ?", uint(id), owner.Key).Delete(&models.Budget{})
			c.JSON(http.StatusOK, fallback)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
		return
	}

	if current.CategoryID != req.CategoryID || current.Month != req.Month {
		var conflict models.Budget
		cerr := db.Where("owner_key = ? AND category_id = ? AND month = ? AND id <> ?",
			owner.Key, req.CategoryID, req.Month, current.ID).First(&conflict).Error
		if cerr == nil {
			// The target triple is taken: adopt the occupying record's
			// identity and retire the one being edited.
			conflict.Limit = req.Limit
			if owner.UserID != nil {
				conflict.UserID = owner.UserID
			}
			if err := db.Save(&conflict).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
				return
			}
			db.Delete(&models.Budget{}, current.ID)
			c.JSON(http.StatusOK, conflict)
			return
		}
		if !errors.Is(cerr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
			return
		}
	}

	current.CategoryID = req.CategoryID
	current.Month = req.Month
	current.Limit = req.Limit
	if owner.UserID != nil {
		current.UserID = owner.UserID
	}
	if err := db.Save(&current).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": budgetConflictMsg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget."})
		return
	}
	c.JSON(http.StatusOK, current)
}

func deleteBudgetHandler(c *gin.Context) {
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
	res := owner.Scope(db).Where("id = ?", uint(id)).Delete(&models.Budget{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
