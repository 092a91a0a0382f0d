package expand

// Stats describes one expansion.
type Stats struct {
	SourceStates  int `json:"source_states"`
	DestStates    int `json:"dest_states"`
	WordStarts    int `json:"word_starts"`
	DelimiterArcs int `json:"delimiter_arcs"`
	WordArcs      int `json:"word_arcs"`
	// Pruned counts extensions dropped for exceeding MaxLength.
	Pruned int `json:"pruned"`
	// Pops counts search entries processed.
	Pops int `json:"pops"`
	// MaxStack is the high-water mark of the work stack.
	MaxStack int `json:"max_stack"`
}

// Add accumulates o into s. MaxStack keeps the larger value.
func (s *Stats) Add(o Stats) {
	s.SourceStates += o.SourceStates
	s.DestStates += o.DestStates
	s.WordStarts += o.WordStarts
	s.DelimiterArcs += o.DelimiterArcs
	s.WordArcs += o.WordArcs
	s.Pruned += o.Pruned
	s.Pops += o.Pops
	s.MaxStack = max(s.MaxStack, o.MaxStack)
}
