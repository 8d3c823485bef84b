package docstore

import (
	"sync"
)

// Broker fans snapshots out to subscribers. Each subscriber owns a one slot
// channel holding the newest undelivered snapshot, so publishing never blocks
// on a slow reader.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	closed bool
}

type subscription struct {
	broker     *Broker
	collection string
	ch         chan Snapshot
	once       sync.Once
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*subscription]struct{})}
}

// Subscribe registers a subscriber and queues initial as its first snapshot.
// Callers hold whatever lock orders their commits, so no publish can slip
// between reading initial and registering.
func (b *Broker) Subscribe(collection string, initial Snapshot) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := &subscription{
		broker:     b,
		collection: collection,
		ch:         make(chan Snapshot, 1),
	}
	sub.ch <- initial

	if b.subs[collection] == nil {
		b.subs[collection] = make(map[*subscription]struct{})
	}

	b.subs[collection][sub] = struct{}{}

	return sub, nil
}

// Publish hands snap to every subscriber of its collection, replacing any
// snapshot they have not read yet.
func (b *Broker) Publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[snap.Collection] {
		sub.offer(snap)
	}
}

// Subscribers returns the number of open subscriptions of a collection.
func (b *Broker) Subscribers(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs[collection])
}

// Close ends every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, subs := range b.subs {
		for sub := range subs {
			sub.once.Do(func() { close(sub.ch) })
		}
	}

	b.subs = make(map[string]map[*subscription]struct{})
}

// offer is called with the broker lock held; the broker is the only sender.
func (s *subscription) offer(snap Snapshot) {
	select {
	case s.ch <- snap:
		return
	default:
	}

	// drop the stale snapshot the reader has not picked up yet
	select {
	case <-s.ch:
	default:
	}

	s.ch <- snap
}

func (s *subscription) Updates() <-chan Snapshot {
	return s.ch
}

func (s *subscription) Close() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()

	if subs := s.broker.subs[s.collection]; subs != nil {
		delete(subs, s)
	}

	s.once.Do(func() { close(s.ch) })
}
