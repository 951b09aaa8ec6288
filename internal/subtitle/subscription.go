package subtitle

import "sync"

const eventBufferSize = 16

// Subscription provides event channels for a consumer running on another
// goroutine, such as a UI loop.
type Subscription struct {
	StateChanged    <-chan Event
	IndexChanged    <-chan Event
	CuesChanged     <-chan Event
	LanguageChanged <-chan Event
	Done            <-chan struct{}

	// Internal write channels
	stateCh    chan Event
	indexCh    chan Event
	cuesCh     chan Event
	languageCh chan Event
	doneCh     chan struct{}

	cancel    func()
	closeOnce sync.Once
}

// Subscribe creates a subscription fed by this manager's events.
// Call Close to stop it.
func (m *Manager) Subscribe() *Subscription {
	s := newSubscription()
	s.cancel = m.Listen(s.dispatch)
	return s
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan Event, eventBufferSize),
		indexCh:    make(chan Event, eventBufferSize),
		cuesCh:     make(chan Event, eventBufferSize),
		languageCh: make(chan Event, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.IndexChanged = s.indexCh
	s.CuesChanged = s.cuesCh
	s.LanguageChanged = s.languageCh
	s.Done = s.doneCh
	return s
}

// Close unregisters the subscription and closes Done.
// Must be called from the goroutine driving the manager.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		close(s.doneCh)
	})
}

func (s *Subscription) dispatch(e Event) {
	switch e.Kind {
	case EventStateChanged:
		send(s.stateCh, e)
	case EventIndexChanged:
		send(s.indexCh, e)
	case EventCuesChanged:
		send(s.cuesCh, e)
	case EventLanguageChanged:
		send(s.languageCh, e)
	}
}

// send delivers e without blocking the playback tick; the event is
// dropped if the buffer is full.
func send(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
	}
}
