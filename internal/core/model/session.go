package model

// Kind is the category of a countdown interval.
type Kind string

const (
	KindWork  Kind = "work"
	KindBreak Kind = "break"
)

// Opposite returns the kind that follows this one.
func (kind Kind) Opposite() Kind {
	if kind == KindWork {
		return KindBreak
	}
	return KindWork
}

// Label returns a human readable name.
func (kind Kind) Label() string {
	if kind == KindBreak {
		return "Break"
	}
	return "Work"
}

// Snapshot is everything a display surface needs to draw the clock.
type Snapshot struct {
	Seq              uint64
	RemainingSeconds int
	Kind             Kind
	Goal             string
	Running          bool
}
