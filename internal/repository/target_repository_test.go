package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

func TestTargetRepository_SetAndAverage(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	programming := r.category(t, "Programming", nil)
	python := r.category(t, "Python", &programming.ID)
	syntax := r.skill(t, "Syntax", python.ID)
	review := r.skill(t, "Review", programming.ID)

	_, err := r.targets.Set(ctx, syntax.ID, 3)
	require.NoError(t, err)
	target, err := r.targets.Set(ctx, syntax.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, target.TargetLevel)
	assert.Equal(t, python.ID, target.CategoryID)
	_, err = r.targets.Set(ctx, review.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.count(t, "skill_gap_settings"))

	subtree, err := r.categories.SubtreeIDs(ctx, programming.ID)
	require.NoError(t, err)
	avg, count, err := r.targets.CategoryTarget(ctx, subtree)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)
	assert.Equal(t, 2, count)

	list, err := r.targets.ListByCategory(ctx, python.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := r.targets.Delete(ctx, syntax.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	avg, _, err = r.targets.CategoryTarget(ctx, []int64{python.ID})
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestTargetRepository_UnknownSkill(t *testing.T) {
	r := setupRepos(t)
	_, err := r.targets.Set(context.Background(), 10, 3)
	assert.ErrorIs(t, err, apperror.ErrSkillNotFound)
}
