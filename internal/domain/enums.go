package domain

// PracticeStatus is the lifecycle state of a practice session attempt.
// The only legal transition is draft -> completed.
type PracticeStatus string

const (
	PracticeStatusDraft     PracticeStatus = "draft"
	PracticeStatusCompleted PracticeStatus = "completed"
)

func (s PracticeStatus) String() string { return string(s) }

func (s PracticeStatus) IsValid() bool {
	switch s {
	case PracticeStatusDraft, PracticeStatusCompleted:
		return true
	}
	return false
}

// TurnStatus classifies how much of a reference turn was spoken.
type TurnStatus string

const (
	TurnStatusCorrect TurnStatus = "correct"
	TurnStatusPartial TurnStatus = "partial"
	TurnStatusMissing TurnStatus = "missing"
)

func (s TurnStatus) String() string { return string(s) }

func (s TurnStatus) IsValid() bool {
	switch s {
	case TurnStatusCorrect, TurnStatusPartial, TurnStatusMissing:
		return true
	}
	return false
}

// ScriptClass selects the tokenization strategy. It is derived from the
// reference text, never taken from the exercise language.
type ScriptClass string

const (
	// ScriptCJK tokenizes per character.
	ScriptCJK ScriptClass = "cjk"
	// ScriptSpaced tokenizes per whitespace-delimited, case-folded word.
	ScriptSpaced ScriptClass = "spaced"
)

func (s ScriptClass) String() string { return string(s) }
