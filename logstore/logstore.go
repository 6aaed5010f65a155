// Package logstore is an injectable debug log store: a bounded buffer of
// recent entries with an explicit subscribe/publish interface. It exists
// so debug consoles can observe client activity without a module-level
// singleton, and so tests get an isolated store each.
package logstore

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  map[string]interface{}
}

// Store holds the most recent entries and fans them out to subscribers.
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
	subs    map[int]chan Entry
	nextSub int
}

// New builds a store retaining at most capacity entries.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = 256
	}
	return &Store{
		cap:  capacity,
		subs: make(map[int]chan Entry),
	}
}

// Append records an entry, evicting the oldest past capacity, and
// publishes it to every subscriber. Slow subscribers whose channel is
// full miss the entry rather than block the logger.
func (s *Store) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	if len(s.entries) > s.cap {
		s.entries = s.entries[len(s.entries)-s.cap:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Subscribe registers a subscriber with the given channel buffer and
// returns its channel plus a cancel function. Cancel closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan Entry, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Entry, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Hook feeds logrus records into a Store.
type Hook struct {
	store *Store
}

// NewHook builds a logrus hook publishing into store. Attach it with
// logger.AddHook.
func NewHook(store *Store) *Hook {
	return &Hook{store: store}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	fields := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		fields[k] = v
	}
	h.store.Append(Entry{
		Time:    entry.Time,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Fields:  fields,
	})
	return nil
}
