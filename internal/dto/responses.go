package dto

import (
	"strconv"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

// UpdatedResponse результат изменения или удаления по id.
type UpdatedResponse struct {
	Updated bool `json:"updated"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// CategoryAverageResponse средний уровень пользователя в поддереве категории.
type CategoryAverageResponse struct {
	UserID     int64   `json:"user_id"`
	CategoryID int64   `json:"category_id"`
	Average    float64 `json:"average"`
}

// CategoryPathResponse категория с полным путём от корня.
type CategoryPathResponse struct {
	*models.Category
	Path string `json:"path"`
}

// GapResponse разрыв по категориям, ключи это id категорий.
type GapResponse struct {
	Gap map[string]float64 `json:"gap"`
}

func NewGapResponse(gap map[int64]float64) GapResponse {
	result := make(map[string]float64, len(gap))
	for id, value := range gap {
		result[strconv.FormatInt(id, 10)] = value
	}
	return GapResponse{Gap: result}
}

// RadarResponse оси радара и суммарный разрыв.
type RadarResponse struct {
	Axes     []models.RadarAxis `json:"axes"`
	TotalGap float64            `json:"total_gap"`
}

// LevelsResponse настроенный диапазон уровней.
type LevelsResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BackupResponse путь созданной резервной копии.
type BackupResponse struct {
	Path string `json:"path"`
}
