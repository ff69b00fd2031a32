package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelColor(t *testing.T) {
	assert.Equal(t, "2E7D32", LevelColor(LevelIV))
	assert.Equal(t, "1976D2", LevelColor(LevelIII))
	assert.Equal(t, "F57C00", LevelColor(LevelII))
	assert.Equal(t, "D32F2F", LevelColor(LevelI))
	assert.Equal(t, UnratedColor, LevelColor("V"))
}

func TestCatalogIsComplete(t *testing.T) {
	for _, slot := range PerformanceSlots {
		assert.NotEmpty(t, slot.Title(), "slot %d", slot)
		for _, level := range PerformanceLevels {
			assert.NotEmpty(t, PerformanceDescription(slot, level), "slot %d level %s", slot, level)
		}
	}
	assert.Empty(t, PerformanceDescription(SlotEngagement, "V"))
	assert.Empty(t, PerformanceDescription(PerformanceSlot(9), LevelI))
}

func TestBuildRubricReturnsCopy(t *testing.T) {
	rubric := BuildRubric()
	require.Len(t, rubric.Levels, 4)
	require.Len(t, rubric.Performances, PerformanceCount)
	assert.Equal(t, "Inicio", rubric.Levels[0].Label)
	assert.Equal(t, "performance1", rubric.Performances[0].Key)

	rubric.Performances[0].Descriptions[LevelIV] = "changed"
	assert.NotEqual(t, "changed", PerformanceDescription(SlotEngagement, LevelIV))
}
