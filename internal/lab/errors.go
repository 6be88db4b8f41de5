package lab

import "errors"

// Rejections are recoverable user-guidance events, never fatal.
// The HTTP layer maps them to envelope responses; no state mutation
// happens on any of these.
var (
	ErrInvalidStep       = errors.New("action not valid in current step")
	ErrUnknownSupply     = errors.New("unknown supply item")
	ErrSuppliesMissing   = errors.New("required supplies not collected")
	ErrUnknownAction     = errors.New("unknown action")
	ErrActionDone        = errors.New("action already performed")
	ErrUnknownSubject    = errors.New("unknown subject")
	ErrSubjectTested     = errors.New("subject already tested")
	ErrReactionPending   = errors.New("a reaction is already in progress")
	ErrNoSubject         = errors.New("no subject selected for testing")
	ErrObservationsShort = errors.New("not enough observations recorded")
	ErrQuizIncomplete    = errors.New("quiz has unanswered questions")
	ErrQuizLocked        = errors.New("quiz is locked until reset")
	ErrUnknownQuestion   = errors.New("unknown quiz question")
	ErrUnknownOption     = errors.New("unknown answer option")
)
