package main

import (
	"testing"

	"github.com/roxy-k/nest-egg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCategoriesOwnedWins(t *testing.T) {
	owned := []models.Category{
		{Slug: "food", Name: "My Food", OwnerKey: "7"},
	}
	shared := []models.Category{
		{Slug: "food", Name: "Food", OwnerKey: models.SharedOwnerKey},
		{Slug: "salary", Name: "Salary", OwnerKey: models.SharedOwnerKey},
	}

	merged := mergeCategories(owned, shared)
	require.Len(t, merged, 2)

	bySlug := map[string]models.Category{}
	for _, c := range merged {
		bySlug[c.Slug] = c
	}
	// the private entry suppresses the shared one with the same slug
	assert.Equal(t, "My Food", bySlug["food"].Name)
	assert.Equal(t, "7", bySlug["food"].OwnerKey)
	assert.Equal(t, models.SharedOwnerKey, bySlug["salary"].OwnerKey)
}

func TestMergeCategoriesSortedByName(t *testing.T) {
	owned := []models.Category{
		{Slug: "zz", Name: "Zebra"},
		{Slug: "aa", Name: "Apple"},
	}
	shared := []models.Category{
		{Slug: "mm", Name: "Mango"},
	}
	merged := mergeCategories(owned, shared)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"Apple", "Mango", "Zebra"},
		[]string{merged[0].Name, merged[1].Name, merged[2].Name})
}

func TestMergeCategoriesSkipsBlankAndDuplicateSlugs(t *testing.T) {
	owned := []models.Category{
		{Slug: "", Name: "Broken"},
		{Slug: "food", Name: "Food"},
		{Slug: "food", Name: "Food Again"},
	}
	merged := mergeCategories(owned, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "Food", merged[0].Name)
}

func TestMergeCategoriesEmptyInputs(t *testing.T) {
	assert.Empty(t, mergeCategories(nil, nil))

	shared := []models.Category{{Slug: "food", Name: "Food"}}
	merged := mergeCategories(nil, shared)
	require.Len(t, merged, 1)
	assert.Equal(t, "food", merged[0].Slug)
}
