package models

// Сущности и действия в событиях изменения данных.
const (
	EntityGroup      = "group"
	EntityUser       = "user"
	EntityCategory   = "category"
	EntitySkill      = "skill"
	EntityEvaluation = "evaluation"
	EntityTarget     = "target"
	EntityImport     = "import"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent сообщение UI о том, что данные изменились и их нужно перечитать.
type ChangeEvent struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}
