package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

func TestComputeGap(t *testing.T) {
	current := map[int64]float64{1: 2, 2: 4.5, 3: 3}
	target := map[int64]float64{1: 4, 2: 3, 4: 5}

	gaps := ComputeGap(current, target)

	assert.Equal(t, 2.0, gaps[1])
	assert.Equal(t, 0.0, gaps[2], "текущий уровень выше цели")
	assert.Equal(t, 0.0, gaps[3], "категория без цели")
	assert.Equal(t, 5.0, gaps[4], "цель без оценок")
	assert.Len(t, gaps, 4)
}

func TestComputeGap_Empty(t *testing.T) {
	assert.Empty(t, ComputeGap(nil, nil))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 3.5, Mean([]int{3, 4}), 1e-9)
}

func TestBuildRadar(t *testing.T) {
	cats := []models.Category{{ID: 10, Name: "Backend"}, {ID: 11, Name: "Frontend"}}
	axes := BuildRadar(cats,
		map[int64]float64{10: 3.333, 11: 4},
		map[int64]float64{10: 4},
	)

	assert.Equal(t, []models.RadarAxis{
		{CategoryID: 10, Name: "Backend", Current: 3.33, Target: 4, Gap: 0.67},
		{CategoryID: 11, Name: "Frontend", Current: 4, Target: 0, Gap: 0},
	}, axes)
	assert.Equal(t, 0.67, TotalGap(axes))
}
