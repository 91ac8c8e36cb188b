package models

import "time"

// Evaluation текущий уровень пользователя по одному навыку.
type Evaluation struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	SkillID   int64     `db:"skill_id" json:"skill_id"`
	Level     int       `db:"level" json:"level"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserEvaluation строка соединения оценка → навык → категория.
type UserEvaluation struct {
	SkillID      int64     `db:"skill_id" json:"skill_id"`
	SkillName    string    `db:"skill_name" json:"skill"`
	CategoryID   int64     `db:"category_id" json:"category_id"`
	CategoryName string    `db:"category_name" json:"category"`
	Level        int       `db:"level" json:"level"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SkillTarget целевой уровень навыка для расчёта разрыва.
type SkillTarget struct {
	ID          int64     `db:"id" json:"id"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	SkillID     int64     `db:"skill_id" json:"skill_id"`
	TargetLevel int       `db:"target_level" json:"target_level"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RadarAxis ось лепестковой диаграммы: текущий уровень, цель и разрыв по категории.
type RadarAxis struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Gap        float64 `json:"gap"`
}

// EvaluationRecord плоская строка оценки для выгрузки.
type EvaluationRecord struct {
	GroupName  *string `db:"group_name"`
	UserName   string  `db:"user_name"`
	EmployeeID *string `db:"employee_id"`
	CategoryID int64   `db:"category_id"`
	SkillName  string  `db:"skill_name"`
	Level      int     `db:"level"`
}
