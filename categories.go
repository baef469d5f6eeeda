package main

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/roxy-k/nest-egg/models"

	"github.com/gin-gonic/gin"
)

// mergeCategories unions owned and shared categories, deduplicated by slug
// with owned entries taking precedence, sorted by name.
func mergeCategories(owned, shared []models.Category) []models.Category {
	seen := make(map[string]bool, len(owned))
	out := make([]models.Category, 0, len(owned)+len(shared))
	for _, cat := range owned {
		if cat.Slug == "" || seen[cat.Slug] {
			continue
		}
		seen[cat.Slug] = true
		out = append(out, cat)
	}
	for _, cat := range shared {
		if cat.Slug == "" || seen[cat.Slug] {
			continue
		}
		seen[cat.Slug] = true
		out = append(out, cat)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func listCategoriesHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	var owned []models.Category
	if err := owner.Scope(db).Order("name asc").Find(&owned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories."})
		return
	}
	var shared []models.Category
	if err := db.Where("owner_key = ?", models.SharedOwnerKey).Order("name asc").Find(&shared).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories."})
		return
	}
	c.JSON(http.StatusOK, mergeCategories(owned, shared))
}

func createCategoryHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	if owner.Key == models.SharedOwnerKey {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category owner."})
		return
	}
	var req struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required,oneof=income expense"`
		Icon string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slug := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	if slug == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and id are required."})
		return
	}
	cat := models.Category{
		Slug:     slug,
		Name:     name,
		Type:     req.Type,
		Icon:     req.Icon,
		OwnerKey: owner.Key,
		UserID:   owner.UserID,
	}
	if err := db.Create(&cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category with this id already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category."})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// deleteCategoryHandler accepts either the slug or the numeric store id.
func deleteCategoryHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	id := c.Param("id")
	tx := owner.Scope(db.Model(&models.Category{}))
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		tx = tx.Where("id = ? OR slug = ?", uint(n), id)
	} else {
		tx = tx.Where("slug = ?", id)
	}
	res := tx.Delete(&models.Category{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category."})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// seedHandler upserts a small starter set owned by the caller. Development
// convenience; not mounted in production.
func seedHandler(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id."})
		return
	}
	starters := []models.Category{
		{Slug: "salary", Name: "Salary", Type: models.TypeIncome},
		{Slug: "groceries", Name: "Groceries", Type: models.TypeExpense},
		{Slug: "rent", Name: "Rent", Type: models.TypeExpense},
	}
	for _, s := range starters {
		if _, err := upsertCategory(owner.Key, owner.UserID, s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed categories."})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "added": len(starters)})
}
