package valueobject

import (
	"fmt"

	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

// Границы, допустимые схемой хранилища.
const (
	SchemaMinLevel = 0
	SchemaMaxLevel = 5
)

// LevelRange настроенный диапазон уровней оценки.
type LevelRange struct {
	Min int
	Max int
}

// DefaultLevelRange диапазон 1..5.
var DefaultLevelRange = LevelRange{Min: 1, Max: 5}

func NewLevelRange(min, max int) (LevelRange, error) {
	if min < SchemaMinLevel || max > SchemaMaxLevel {
		return LevelRange{}, apperror.Validation("диапазон уровней должен лежать в %d..%d", SchemaMinLevel, SchemaMaxLevel)
	}
	if min >= max {
		return LevelRange{}, apperror.New(apperror.ErrCodeValidation, "минимальный уровень должен быть меньше максимального")
	}
	return LevelRange{Min: min, Max: max}, nil
}

// Validate проверяет, что уровень попадает в диапазон.
func (r LevelRange) Validate(level int) error {
	if level < r.Min || level > r.Max {
		return apperror.Validation("уровень должен быть от %d до %d", r.Min, r.Max)
	}
	return nil
}

func (r LevelRange) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

func (r LevelRange) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}
