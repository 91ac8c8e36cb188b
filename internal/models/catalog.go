package models

import "time"

// Category узел дерева классификации навыков.
type Category struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	ParentID     *int64     `db:"parent_id" json:"parent_id"`
	GroupID      *int64     `db:"group_id" json:"group_id,omitempty"`
	DisplayOrder int        `db:"display_order" json:"display_order"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	Children     []Category `db:"-" json:"children,omitempty"`
}

// IsRoot сообщает, что категория корневая.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryNode категория с вложенными узлами и навыками.
type CategoryNode struct {
	Category
	Depth  int             `json:"depth"`
	Nodes  []*CategoryNode `json:"nodes,omitempty"`
	Skills []Skill         `json:"skills,omitempty"`
}

// CategoryDeleteResult сколько строк удалено каскадом.
type CategoryDeleteResult struct {
	Categories  int64 `json:"categories"`
	Skills      int64 `json:"skills"`
	Evaluations int64 `json:"evaluations"`
}

// Skill компетенция, принадлежащая ровно одной категории.
type Skill struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
