// Package awards holds the finalized result of the most recent play
// session so award screens can read it after the session ends.
package awards

import (
	"github.com/phoenixvc/mystira-client/pkg/api"
)

// State is a single-slot holder for a finalized session result. It is
// created empty, set once by the session finalizer, read by any number
// of consumers, and cleared when the award screen is dismissed.
//
// State is a plain cell with no synchronization; it is not safe for
// concurrent use.
type State struct {
	result *api.SessionResult
}

// NewState creates an empty holder.
func NewState() *State {
	return &State{}
}

// Set stores a finalized session result, replacing any previous one.
func (s *State) Set(result *api.SessionResult) {
	s.result = result
}

// Get returns the most recently set result. The second return value is
// false when nothing is held.
func (s *State) Get() (*api.SessionResult, bool) {
	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

// Clear empties the holder.
func (s *State) Clear() {
	s.result = nil
}
