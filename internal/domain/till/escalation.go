package till

import (
	"fmt"
	"time"
)

// ShiftWindow labels the named schedule a shift opening falls into.
type ShiftWindow string

const (
	WindowMorning     ShiftWindow = "Morning"
	WindowEvening     ShiftWindow = "Evening"
	WindowNonStandard ShiftWindow = "NonStandard"
)

// Closing tolerance around the expected window end, and the lateness
// beyond which a supervisor must sign off.
const (
	closeTolerance = 30 * time.Minute
	maxLateness    = 2 * time.Hour
)

// CloseDecision is the escalation gate's verdict for a close attempt.
type CloseDecision struct {
	Window   ShiftWindow
	Required bool
	Reason   string
	Reminder bool
}

// ClassifyWindow maps a shift opening time to its schedule window.
// Openings in [05:00, 13:00) belong to the Morning window (expected
// close 14:00), openings in [13:00, 21:00) to the Evening window
// (expected close 22:00); anything else is a non-standard start.
func ClassifyWindow(openedAt time.Time) ShiftWindow {
	switch h := openedAt.Hour(); {
	case h >= 5 && h < 13:
		return WindowMorning
	case h >= 13 && h < 21:
		return WindowEvening
	default:
		return WindowNonStandard
	}
}

// expectedWindowEnd returns the expected closing instant for a
// classified shift, on the opening day in the opening's location.
func expectedWindowEnd(openedAt time.Time, window ShiftWindow) time.Time {
	endHour := 14
	if window == WindowEvening {
		endHour = 22
	}
	return time.Date(openedAt.Year(), openedAt.Month(), openedAt.Day(), endHour, 0, 0, 0, openedAt.Location())
}

// EvaluateCloseTime decides whether closing the shift now needs a
// supervisor override. The gate is pure: the caller collects the
// credentials and passes the resulting AuthorizationRecord into the
// close call.
func EvaluateCloseTime(openedAt, closeAt time.Time) CloseDecision {
	window := ClassifyWindow(openedAt)
	if window == WindowNonStandard {
		return CloseDecision{
			Window:   window,
			Required: true,
			Reason:   "non-standard shift start",
		}
	}

	windowEnd := expectedWindowEnd(openedAt, window)
	delta := closeAt.Sub(windowEnd)

	switch {
	case delta < -closeTolerance:
		minutesEarly := int((-delta).Minutes())
		return CloseDecision{
			Window:   window,
			Required: true,
			Reason:   fmt.Sprintf("closing %d minutes before the expected %s window end", minutesEarly, window),
		}
	case delta > maxLateness:
		minutesLate := int(delta.Minutes())
		return CloseDecision{
			Window:   window,
			Required: true,
			Reason:   fmt.Sprintf("closing %d minutes after the expected %s window end", minutesLate, window),
		}
	case delta > closeTolerance:
		minutesLate := int(delta.Minutes())
		return CloseDecision{
			Window:   window,
			Reminder: true,
			Reason:   fmt.Sprintf("shift ran %d minutes past the expected %s window end", minutesLate, window),
		}
	default:
		return CloseDecision{Window: window}
	}
}
