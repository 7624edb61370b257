package quiz

// Signal is an ordered list of observers notified synchronously on Emit.
type Signal struct {
	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a function that removes it again.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every observer in subscription order.
// Observers added or removed during Emit take effect on the next call.
func (s *Signal) Emit() {
	snapshot := make([]observer, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		o.fn()
	}
}

// Len returns the number of subscribed observers.
func (s *Signal) Len() int {
	return len(s.observers)
}
