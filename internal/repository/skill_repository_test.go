package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

func TestSkillRepository_UniquePerCategory(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	python := r.category(t, "Python", nil)
	golang := r.category(t, "Go", nil)
	r.skill(t, "Testing", python.ID)

	err := r.skills.Create(ctx, &models.Skill{Name: "Testing", CategoryID: python.ID})
	assert.True(t, apperror.IsDuplicate(err), "получено: %v", err)

	require.NoError(t, r.skills.Create(ctx, &models.Skill{Name: "Testing", CategoryID: golang.ID}))
	assert.Equal(t, 2, r.count(t, "skills"))
}

func TestSkillRepository_MissingCategory(t *testing.T) {
	r := setupRepos(t)
	err := r.skills.Create(context.Background(), &models.Skill{Name: "Ghost", CategoryID: 5})
	assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
}

func TestSkillRepository_UpdateMissingSkill(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	ok, err := r.skills.Update(ctx, &models.Skill{ID: 999, Name: "Ghost", CategoryID: 999})
	require.NoError(t, err)
	assert.False(t, ok)

	python := r.category(t, "Python", nil)
	skill := r.skill(t, "Testing", python.ID)
	skill.CategoryID = 999
	_, err = r.skills.Update(ctx, skill)
	assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
}

func TestSkillRepository_ListAndMove(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	python := r.category(t, "Python", nil)
	golang := r.category(t, "Go", nil)
	r.skill(t, "Typing", python.ID)
	syntax := r.skill(t, "Syntax", python.ID)

	list, err := r.skills.ListByCategory(ctx, python.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Syntax", list[0].Name)

	_, err = r.targets.Set(ctx, syntax.ID, 4)
	require.NoError(t, err)

	syntax.CategoryID = golang.ID
	updated, err := r.skills.Update(ctx, syntax)
	require.NoError(t, err)
	assert.True(t, updated)

	target, err := r.targets.Get(ctx, syntax.ID)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, golang.ID, target.CategoryID)

	both, err := r.skills.ListByCategories(ctx, []int64{python.ID, golang.ID})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	none, err := r.skills.ListByCategories(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	updated, err = r.skills.Update(ctx, &models.Skill{ID: 999, Name: "X", CategoryID: golang.ID})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestSkillRepository_DeleteRemovesDependents(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	alice := r.user(t, "Alice", nil)
	cat := r.category(t, "Python", nil)
	skill := r.skill(t, "Syntax", cat.ID)
	_, err := r.evaluations.Upsert(ctx, alice.ID, skill.ID, 2)
	require.NoError(t, err)
	_, err = r.targets.Set(ctx, skill.ID, 4)
	require.NoError(t, err)

	deleted, err := r.skills.Delete(ctx, skill.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, r.count(t, "evaluations"))
	assert.Zero(t, r.count(t, "skill_gap_settings"))
}
