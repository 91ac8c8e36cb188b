package models

import "time"

// Group организационная единица (команда), в которую входят пользователи.
type Group struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// GroupStats сводка по группе для таблицы статистики.
type GroupStats struct {
	GroupID         int64   `db:"group_id" json:"group_id"`
	MemberCount     int     `db:"member_count" json:"member_count"`
	EvaluationCount int     `db:"evaluation_count" json:"evaluation_count"`
	AverageLevel    float64 `db:"average_level" json:"average_level"`
	MinLevel        int     `db:"min_level" json:"min_level"`
	MaxLevel        int     `db:"max_level" json:"max_level"`
}
