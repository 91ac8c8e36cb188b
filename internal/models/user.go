package models

import "time"

// User сотрудник, для которого ведутся оценки навыков.
type User struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	EmployeeID *string   `db:"employee_id" json:"employee_id,omitempty"`
	GroupID    *int64    `db:"group_id" json:"group_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// UserFilter параметры выборки пользователей.
type UserFilter struct {
	GroupID *int64
	// Ungrouped выбирает пользователей без группы.
	Ungrouped bool
}
