package models

// SystemCounts число записей в основных таблицах.
type SystemCounts struct {
	Groups      int64 `db:"group_count" json:"groups"`
	Users       int64 `db:"user_count" json:"users"`
	Categories  int64 `db:"category_count" json:"categories"`
	Skills      int64 `db:"skill_count" json:"skills"`
	Evaluations int64 `db:"evaluation_count" json:"evaluations"`
	Targets     int64 `db:"target_count" json:"targets"`
}

// SystemInfo сведения для вкладки обслуживания.
type SystemInfo struct {
	Driver string       `json:"driver"`
	Schema string       `json:"schema"`
	Counts SystemCounts `json:"counts"`
}
