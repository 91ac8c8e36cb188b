package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

func TestSkillService_CreateSkill(t *testing.T) {
	skills := new(mockSkillRepo)
	svc := NewSkillService(skills, nil)
	ctx := context.Background()

	skills.On("Create", ctx, mock.AnythingOfType("*models.Skill")).Return(nil).Once()
	skills.On("Create", ctx, mock.AnythingOfType("*models.Skill")).
		Return(apperror.Duplicate("навык с таким названием уже есть в категории", nil))

	skill, err := svc.CreateSkill(ctx, SkillInput{Name: "Syntax", CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), skill.ID)

	_, err = svc.CreateSkill(ctx, SkillInput{Name: "Syntax", CategoryID: 2})
	assert.True(t, apperror.IsDuplicate(err))
}

func TestSkillService_CreateSkill_Validation(t *testing.T) {
	skills := new(mockSkillRepo)
	svc := NewSkillService(skills, nil)

	_, err := svc.CreateSkill(context.Background(), SkillInput{Name: "Syntax"})
	assert.True(t, apperror.IsValidation(err))
	skills.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSkillService_EnsureSkill(t *testing.T) {
	skills := new(mockSkillRepo)
	svc := NewSkillService(skills, nil)
	ctx := context.Background()

	skills.On("GetByName", ctx, int64(2), "Syntax").Return(&models.Skill{ID: 5, Name: "Syntax", CategoryID: 2}, nil)
	skills.On("GetByName", ctx, int64(2), "Typing").Return(nil, nil)
	skills.On("Create", ctx, mock.AnythingOfType("*models.Skill")).Return(nil)

	skill, created, err := svc.EnsureSkill(ctx, 2, "Syntax")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(5), skill.ID)

	skill, created, err = svc.EnsureSkill(ctx, 2, "Typing")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Typing", skill.Name)
}

func TestSkillService_RenameSkill_KeepsCategory(t *testing.T) {
	skills := new(mockSkillRepo)
	svc := NewSkillService(skills, nil)
	ctx := context.Background()

	skills.On("GetByID", ctx, int64(5)).Return(&models.Skill{ID: 5, Name: "Syntax", CategoryID: 2, Description: "основы"}, nil)
	skills.On("GetByID", ctx, int64(6)).Return(nil, nil)
	skills.On("Update", ctx, mock.MatchedBy(func(s *models.Skill) bool {
		return s.Name == "Grammar" && s.CategoryID == 2 && s.Description == "основы"
	})).Return(true, nil)

	renamed, err := svc.RenameSkill(ctx, 5, "Grammar")
	require.NoError(t, err)
	assert.True(t, renamed)

	renamed, err = svc.RenameSkill(ctx, 6, "Grammar")
	require.NoError(t, err)
	assert.False(t, renamed)
}
