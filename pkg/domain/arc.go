package domain

// Arc is a weighted edge. The source state is implicit: it is the state
// that owns the arc.
type Arc[W any] struct {
	ILabel    Label
	OLabel    Label
	Weight    W
	NextState StateID
}

// Label returns the label on the given side of the arc.
func (a Arc[W]) Label(side MatchSide) Label {
	if side == MatchInput {
		return a.ILabel
	}
	return a.OLabel
}
