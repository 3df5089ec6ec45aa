// Package task defines the to-do item record and its validation rules.
//
// A Task carries four fields:
//
//	Description  free text, required by the manager but not by New
//	Done         completion flag, only ever flipped to true
//	Priority     0 (none), 1 (High), 2 (Medium) or 3 (Low)
//	Deadline     a calendar date, or the zero time for none
//
// # Rendering
//
// String renders the canonical one-line display form used by list output:
//
//	[X] Buy milk | Priority: High | Deadline: 2025-01-01
//	[ ] Call John | Priority: None | Deadline: None
//
// # Validation
//
// Field rules are declared as go-playground/validator struct tags. Deadlines
// must be midnight dates; New normalizes them to UTC so that two tasks built
// from the same calendar day compare equal regardless of location.
package task
