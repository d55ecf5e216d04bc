package punch

import (
	puncherrors "sphere-timecontrol/internal/punch/errors"
)

// Sequence decides whether a proposed punch kind is admissible given the
// employee's most recent recorded event. It is a pure function: the caller
// fetches the latest event and persists the new one after a nil return.
//
// The admissibility rules form a single chain per employee:
//
//	CHECK_IN    -> only when not checked in (last is nil or CHECK_OUT)
//	CHECK_OUT   -> only while working (CHECK_IN, BREAK_END, LUNCH_END)
//	BREAK_START -> only while working
//	LUNCH_START -> only while working
//	BREAK_END   -> only right after BREAK_START
//	LUNCH_END   -> only right after LUNCH_START
//
// "Checked in" is evaluated against the latest event ever, not just today:
// an employee who forgot to check out must check out (or have the record
// corrected) before checking in again.
func Sequence(last *PunchEvent, proposed Kind) error {
	if !proposed.Valid() {
		return puncherrors.ErrInvalidKind
	}

	var lastKind Kind
	if last != nil {
		lastKind = last.Kind
	}

	switch proposed {
	case KindCheckIn:
		if last == nil || lastKind == KindCheckOut {
			return nil
		}
		return puncherrors.ErrAlreadyCheckedIn

	case KindCheckOut:
		if working(lastKind) {
			return nil
		}
		return puncherrors.ErrNotCheckedIn

	case KindBreakStart, KindLunchStart:
		if working(lastKind) {
			return nil
		}
		return puncherrors.ErrNotWorking

	case KindBreakEnd:
		if lastKind == KindBreakStart {
			return nil
		}
		return puncherrors.ErrNoOpenBreak

	case KindLunchEnd:
		if lastKind == KindLunchStart {
			return nil
		}
		return puncherrors.ErrNoOpenBreak
	}

	return puncherrors.ErrInvalidKind
}

// working reports whether the last event leaves the employee on the clock
// and not inside an open break.
func working(lastKind Kind) bool {
	switch lastKind {
	case KindCheckIn, KindBreakEnd, KindLunchEnd:
		return true
	default:
		return false
	}
}

// State is the employee's presence status derived from the latest event.
type State string

const (
	StateCheckedOut State = "CHECKED_OUT"
	StateWorking    State = "WORKING"
	StateOnBreak    State = "ON_BREAK"
	StateAtLunch    State = "AT_LUNCH"
)

// CurrentState recomputes the employee's status from the latest persisted
// event. Status is never held in memory between calls.
func CurrentState(last *PunchEvent) State {
	if last == nil {
		return StateCheckedOut
	}
	switch last.Kind {
	case KindCheckIn, KindBreakEnd, KindLunchEnd:
		return StateWorking
	case KindBreakStart:
		return StateOnBreak
	case KindLunchStart:
		return StateAtLunch
	default:
		return StateCheckedOut
	}
}
