package reconcile

// Phase is the position of a State in its fetch cycle.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Missing
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is the view state owned by a single screen.
//
// Err is the banner text. Begin clears it, so a loading state never shows
// an error from the same cycle.
type State[T any] struct {
	Phase Phase
	Data  T
	Err   string
}

// IsLoading reports whether a request is outstanding.
func (s State[T]) IsLoading() bool {
	return s.Phase == Loading
}

// Begin enters Loading. It reports false when a request is already
// outstanding, in which case the caller must not issue another.
func (s *State[T]) Begin() bool {
	if s.Phase == Loading {
		return false
	}
	s.Phase = Loading
	s.Err = ""
	return true
}

// Apply resolves the cycle with o. Failed keeps the previous Data.
func (s *State[T]) Apply(o Outcome[T]) {
	switch o.Class {
	case Success:
		s.Phase = Loaded
		s.Data = o.Data
		s.Err = ""
	case Absent:
		var zero T
		s.Phase = Missing
		s.Data = zero
		s.Err = ""
	default:
		s.Phase = Errored
		s.Err = o.Message
	}
}

// Refresh resolves the re-fetch that follows a mutation. A mutation error
// stays on the banner unless the re-fetch itself failed.
func (s *State[T]) Refresh(o Outcome[T], mutationErr string) {
	s.Apply(o)
	if o.Class != Failed && mutationErr != "" {
		s.Err = mutationErr
	}
}

// DismissError clears the banner and leaves Data alone.
func (s *State[T]) DismissError() {
	s.Err = ""
}
