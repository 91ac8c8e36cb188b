package service

import "github.com/skillmatrix/skill-matrix/internal/models"

// Notifier получает события об изменении данных (например, WebSocket хаб).
type Notifier interface {
	Publish(event models.ChangeEvent)
}

func publish(n Notifier, entity, action string, id int64) {
	if n == nil {
		return
	}
	n.Publish(models.ChangeEvent{Entity: entity, Action: action, ID: id})
}
