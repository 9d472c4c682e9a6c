package till

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestClassifyWindow(t *testing.T) {
	tests := []struct {
		name     string
		openedAt time.Time
		expected ShiftWindow
	}{
		{"morning lower bound", at(5, 0), WindowMorning},
		{"mid morning", at(6, 10), WindowMorning},
		{"morning upper bound", at(12, 59), WindowMorning},
		{"evening lower bound", at(13, 0), WindowEvening},
		{"mid evening", at(14, 30), WindowEvening},
		{"evening upper bound", at(20, 59), WindowEvening},
		{"late night", at(21, 0), WindowNonStandard},
		{"before dawn", at(4, 59), WindowNonStandard},
		{"midnight", at(0, 0), WindowNonStandard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyWindow(tc.openedAt))
		})
	}
}

func TestEvaluateCloseTime_MorningWindow(t *testing.T) {
	// Morning shift opened 06:10, expected window end 14:00.
	openedAt := at(6, 10)

	tests := []struct {
		name     string
		closeAt  time.Time
		required bool
		reminder bool
	}{
		{"well before window end", at(13, 25), true, false},
		{"within early tolerance", at(13, 32), false, false},
		{"exactly at window end", at(14, 0), false, false},
		{"within late tolerance", at(14, 30), false, false},
		{"late but under two hours", at(15, 30), false, true},
		{"exactly two hours late", at(16, 0), false, true},
		{"more than two hours late", at(16, 45), true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := EvaluateCloseTime(openedAt, tc.closeAt)
			assert.Equal(t, WindowMorning, decision.Window)
			assert.Equal(t, tc.required, decision.Required)
			assert.Equal(t, tc.reminder, decision.Reminder)
			if tc.required || tc.reminder {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestEvaluateCloseTime_EveningWindow(t *testing.T) {
	// Evening shift opened 14:30, expected window end 22:00.
	openedAt := at(14, 30)

	decision := EvaluateCloseTime(openedAt, at(22, 20))
	assert.Equal(t, WindowEvening, decision.Window)
	assert.False(t, decision.Required)
	assert.False(t, decision.Reminder)

	decision = EvaluateCloseTime(openedAt, at(21, 0))
	assert.True(t, decision.Required)
	assert.Contains(t, decision.Reason, "before the expected Evening window end")
}

func TestEvaluateCloseTime_NonStandardAlwaysRequired(t *testing.T) {
	openedAt := at(23, 50)

	// No matter when it closes, a non-standard opening needs sign-off.
	closeTimes := []time.Time{
		openedAt.Add(10 * time.Minute),
		openedAt.Add(8 * time.Hour),
	}
	for _, closeAt := range closeTimes {
		decision := EvaluateCloseTime(openedAt, closeAt)
		assert.Equal(t, WindowNonStandard, decision.Window)
		assert.True(t, decision.Required)
		assert.Equal(t, "non-standard shift start", decision.Reason)
	}
}

func TestEvaluateCloseTime_ReasonIncludesMinutes(t *testing.T) {
	openedAt := at(6, 10)

	decision := EvaluateCloseTime(openedAt, at(13, 25))
	assert.Contains(t, decision.Reason, "35 minutes before")

	decision = EvaluateCloseTime(openedAt, at(16, 45))
	assert.Contains(t, decision.Reason, "165 minutes after")

	decision = EvaluateCloseTime(openedAt, at(15, 30))
	assert.Contains(t, decision.Reason, "90 minutes past")
}
