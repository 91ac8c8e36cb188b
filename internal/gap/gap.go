package gap

import (
	"math"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

// ComputeGap считает разрыв по категориям: max(target-current, 0).
// Категория без цели считается с целью 0, то есть без разрыва.
func ComputeGap(current, target map[int64]float64) map[int64]float64 {
	result := make(map[int64]float64, len(current)+len(target))
	for id, level := range current {
		result[id] = positive(target[id] - level)
	}
	for id, t := range target {
		if _, ok := current[id]; !ok {
			result[id] = positive(t)
		}
	}
	return result
}

// Mean среднее арифметическое, 0 для пустого набора.
func Mean(levels []int) float64 {
	if len(levels) == 0 {
		return 0
	}
	sum := 0
	for _, l := range levels {
		sum += l
	}
	return float64(sum) / float64(len(levels))
}

// BuildRadar собирает оси диаграммы в порядке categories.
func BuildRadar(categories []models.Category, current, target map[int64]float64) []models.RadarAxis {
	gaps := ComputeGap(current, target)

	axes := make([]models.RadarAxis, 0, len(categories))
	for _, c := range categories {
		axes = append(axes, models.RadarAxis{
			CategoryID: c.ID,
			Name:       c.Name,
			Current:    round2(current[c.ID]),
			Target:     round2(target[c.ID]),
			Gap:        round2(gaps[c.ID]),
		})
	}
	return axes
}

// TotalGap сумма разрывов по всем осям.
func TotalGap(axes []models.RadarAxis) float64 {
	total := 0.0
	for _, a := range axes {
		total += a.Gap
	}
	return round2(total)
}

func positive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
