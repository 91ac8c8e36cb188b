package dto

import (
	"fmt"
	"strconv"
)

// GroupRequest создание и изменение группы.
type GroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UserRequest создание и изменение пользователя.
type UserRequest struct {
	Name       string  `json:"name" binding:"required"`
	EmployeeID *string `json:"employee_id"`
	GroupID    *int64  `json:"group_id"`
}

// CategoryRequest создание и изменение категории.
type CategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ParentID     *int64 `json:"parent_id"`
	GroupID      *int64 `json:"group_id"`
	DisplayOrder int    `json:"display_order"`
}

// MoveCategoryRequest перенос категории; пустой parent_id делает её корневой.
type MoveCategoryRequest struct {
	ParentID *int64 `json:"parent_id"`
}

// SkillRequest создание и изменение навыка.
type SkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id" binding:"required"`
}

// EvaluationRequest оценка пользователя по навыку.
type EvaluationRequest struct {
	UserID  int64 `json:"user_id" binding:"required"`
	SkillID int64 `json:"skill_id" binding:"required"`
	Level   *int  `json:"level" binding:"required"`
}

// BulkEvaluationRequest пакет оценок одной транзакцией.
type BulkEvaluationRequest struct {
	Evaluations []EvaluationRequest `json:"evaluations" binding:"required,dive"`
}

// TargetRequest целевой уровень навыка.
type TargetRequest struct {
	Level *int `json:"level" binding:"required"`
}

// GapRequest расчёт разрыва по произвольным уровням. Ключи карт это id категорий.
type GapRequest struct {
	Current map[string]float64 `json:"current"`
	Target  map[string]float64 `json:"target"`
}

// Parse переводит ключи карт в id категорий.
func (r *GapRequest) Parse() (current, target map[int64]float64, err error) {
	if current, err = parseIDMap(r.Current); err != nil {
		return nil, nil, err
	}
	if target, err = parseIDMap(r.Target); err != nil {
		return nil, nil, err
	}
	return current, target, nil
}

func parseIDMap(values map[string]float64) (map[int64]float64, error) {
	result := make(map[int64]float64, len(values))
	for key, value := range values {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный id категории %q", key)
		}
		result[id] = value
	}
	return result, nil
}
