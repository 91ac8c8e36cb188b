package clock

import "time"

// Clock источник текущего времени для отметок created_at/updated_at.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// System возвращает часы реального времени в UTC.
func System() Clock {
	return systemClock{}
}

// FixedClock всегда возвращает одно и то же время. Используется в тестах.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance сдвигает время вперёд.
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

// Fixed создаёт часы с заданным временем.
func Fixed(t time.Time) *FixedClock {
	return &FixedClock{T: t.UTC()}
}
