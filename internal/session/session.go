// Package session holds the per-caller exploration state: the bus a caller selected and the rules last fetched for it.
package session

import (
	"slices"
	"time"

	"github.com/isometry/eventbridge-explorer/internal/topology"
)

// Header is the HTTP header carrying the session id.
const Header = "X-Session-Id"

// Session is a caller's view of the explorer. Values returned by a Store are copies;
// changes only become visible to other callers through Store.Update.
type Session struct {
	ID        string              `json:"id"`
	Bus       string              `json:"bus,omitempty"`
	Buses     []topology.EventBus `json:"-"`
	Rules     []topology.Rule     `json:"-"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Select makes bus the selected bus and drops rules cached for a previous selection.
func (s *Session) Select(bus string) {
	if s.Bus != bus {
		s.Rules = nil
	}
	s.Bus = bus
}

// FindBus looks a bus up in the last listing held by the session.
func (s *Session) FindBus(name string) (topology.EventBus, bool) {
	i := slices.IndexFunc(s.Buses, func(b topology.EventBus) bool { return b.Name == name })
	if i < 0 {
		return topology.EventBus{}, false
	}
	return s.Buses[i], true
}

func (s Session) clone() Session {
	s.Buses = slices.Clone(s.Buses)
	s.Rules = slices.Clone(s.Rules)
	return s
}
