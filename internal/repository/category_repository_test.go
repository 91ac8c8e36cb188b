package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

func TestCategoryRepository_CreateThenGet(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	root := r.category(t, "Programming", nil)
	child := r.category(t, "Python", &root.ID)

	got, err := r.categories.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Python", got.Name)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	got, err = r.categories.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	assert.True(t, got.IsRoot())
}

func TestCategoryRepository_MissingParent(t *testing.T) {
	r := setupRepos(t)
	err := r.categories.Create(context.Background(), &models.Category{Name: "Orphan", ParentID: int64Ptr(77)})
	assert.ErrorIs(t, err, apperror.ErrParentNotFound)
	assert.Zero(t, r.count(t, "categories"))
}

func TestCategoryRepository_UpdateMissingCategory(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	ok, err := r.categories.Update(ctx, &models.Category{ID: 999, Name: "Ghost", ParentID: int64Ptr(998)})
	require.NoError(t, err)
	assert.False(t, ok)

	programming := r.category(t, "Programming", nil)
	programming.ParentID = int64Ptr(998)
	_, err = r.categories.Update(ctx, programming)
	assert.ErrorIs(t, err, apperror.ErrParentNotFound)
}

func TestCategoryRepository_SiblingUniqueness(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	programming := r.category(t, "Programming", nil)
	design := r.category(t, "Design", nil)
	r.category(t, "Basics", &programming.ID)
	basics := r.category(t, "Basics", &design.ID)

	err := r.categories.Create(ctx, &models.Category{Name: "Programming"})
	assert.True(t, apperror.IsDuplicate(err), "корни тоже уникальны: %v", err)

	err = r.categories.Create(ctx, &models.Category{Name: "Basics", ParentID: &programming.ID})
	assert.True(t, apperror.IsDuplicate(err), "получено: %v", err)

	r.category(t, "Advanced", &design.ID)
	_, err = r.categories.Rename(ctx, basics.ID, "Advanced")
	assert.True(t, apperror.IsDuplicate(err), "получено: %v", err)

	renamed, err := r.categories.Rename(ctx, basics.ID, "Intro")
	require.NoError(t, err)
	assert.True(t, renamed)

	renamed, err = r.categories.Rename(ctx, 999, "Ghost")
	require.NoError(t, err)
	assert.False(t, renamed)

	found, err := r.categories.GetByName(ctx, &design.ID, "Intro")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, basics.ID, found.ID)
}

func TestCategoryRepository_ListChildrenOrder(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	root := r.category(t, "Root", nil)
	require.NoError(t, r.categories.Create(ctx, &models.Category{Name: "Zeta", ParentID: &root.ID}))
	require.NoError(t, r.categories.Create(ctx, &models.Category{Name: "Beta", ParentID: &root.ID, DisplayOrder: 2}))
	require.NoError(t, r.categories.Create(ctx, &models.Category{Name: "Alpha", ParentID: &root.ID, DisplayOrder: 2}))

	children, err := r.categories.ListChildren(ctx, &root.ID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, []string{"Zeta", "Alpha", "Beta"}, []string{children[0].Name, children[1].Name, children[2].Name})

	roots, err := r.categories.ListChildren(ctx, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Root", roots[0].Name)
}

func TestCategoryRepository_ListByGroup(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	dev := r.group(t, "Dev")
	require.NoError(t, r.categories.Create(ctx, &models.Category{Name: "Backend", GroupID: &dev.ID}))
	r.category(t, "Common", nil)

	list, err := r.categories.ListByGroup(ctx, dev.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Backend", list[0].Name)

	_, err = r.groups.Delete(ctx, dev.ID)
	require.NoError(t, err)
	got, err := r.categories.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got.GroupID)
}

func TestCategoryRepository_UpdateRejectsCycle(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	a := r.category(t, "A", nil)
	b := r.category(t, "B", &a.ID)
	c := r.category(t, "C", &b.ID)

	a.ParentID = &c.ID
	_, err := r.categories.Update(ctx, a)
	assert.ErrorIs(t, err, apperror.ErrCategoryCycle)
	assert.True(t, apperror.IsValidation(err))

	a.ParentID = &a.ID
	_, err = r.categories.Update(ctx, a)
	assert.ErrorIs(t, err, apperror.ErrCategoryCycle)

	// Перенос C в корень допустим
	c.ParentID = nil
	updated, err := r.categories.Update(ctx, c)
	require.NoError(t, err)
	assert.True(t, updated)

	ids, err := r.categories.SubtreeIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, ids)
}

func TestCategoryRepository_DeleteCascadesSubtreeOnly(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	alice := r.user(t, "Alice", nil)

	programming := r.category(t, "Programming", nil)
	python := r.category(t, "Python", &programming.ID)
	web := r.category(t, "Web", &python.ID)
	golang := r.category(t, "Go", &programming.ID)
	syntax := r.skill(t, "Syntax", python.ID)
	django := r.skill(t, "Django", web.ID)
	r.skill(t, "Goroutines", golang.ID)

	design := r.category(t, "Design", nil)
	figma := r.skill(t, "Figma", design.ID)

	for _, s := range []*models.Skill{syntax, django, figma} {
		_, err := r.evaluations.Upsert(ctx, alice.ID, s.ID, 3)
		require.NoError(t, err)
	}
	_, err := r.targets.Set(ctx, django.ID, 5)
	require.NoError(t, err)

	result, err := r.categories.DeleteWithStats(ctx, programming.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(4), result.Categories)
	assert.Equal(t, int64(3), result.Skills)
	assert.Equal(t, int64(2), result.Evaluations)

	assert.Equal(t, 1, r.count(t, "categories"))
	assert.Equal(t, 1, r.count(t, "skills"))
	assert.Equal(t, 1, r.count(t, "evaluations"))
	assert.Zero(t, r.count(t, "skill_gap_settings"))

	left, err := r.evaluations.Get(ctx, alice.ID, figma.ID)
	require.NoError(t, err)
	require.NotNil(t, left)

	deleted, err := r.categories.Delete(ctx, programming.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
