// Package vision holds the read-only world view every checker and the
// Replacer observe: ball pose/velocity and per-team robot poses, kept
// current by a Client reading UDP vision datagrams.
package vision

import (
	"sync"

	"github.com/lguibr/vssref/types"
)

// Snapshot is the single writer of ball and robot observations. Readers
// always copy out under the lock and release before doing anything else,
// per the atomic-snapshot-read discipline the concurrency model requires.
type Snapshot struct {
	mu     sync.RWMutex
	frame  types.Frame
	ballOK bool
}

// NewSnapshot returns an empty, invalid snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Update replaces the entire observed frame atomically. Called only by a
// Client's receive loop.
func (s *Snapshot) Update(frame types.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	s.ballOK = true
}

// GetBallPosition returns the last observed ball position, and whether
// any frame has been observed yet (the Position.valid bit from the data
// model).
func (s *Snapshot) GetBallPosition() (types.Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame.BallPosition, s.ballOK
}

// GetBallVelocity returns the last observed ball velocity.
func (s *Snapshot) GetBallVelocity() types.Velocity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame.BallVelocity
}

// GetAvailablePlayers lists the ids currently tracked for color.
func (s *Snapshot) GetAvailablePlayers(color types.Color) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.frame.Robots))
	for _, r := range s.frame.Robots {
		if r.Color == color {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// GetPlayer returns the full robot record for color/id, and whether it
// was found in the last observed frame.
func (s *Snapshot) GetPlayer(color types.Color, id int) (types.Robot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.frame.Robots {
		if r.Color == color && r.ID == id {
			return r, true
		}
	}
	return types.Robot{}, false
}

// GetPlayerPosition is the vision client contract's position accessor.
func (s *Snapshot) GetPlayerPosition(color types.Color, id int) (types.Position, bool) {
	r, ok := s.GetPlayer(color, id)
	return r.Position, ok
}

// GetPlayerVelocity is the vision client contract's velocity accessor.
func (s *Snapshot) GetPlayerVelocity(color types.Color, id int) (types.Velocity, bool) {
	r, ok := s.GetPlayer(color, id)
	return r.Velocity, ok
}

// GetPlayerOrientation is the vision client contract's orientation
// accessor.
func (s *Snapshot) GetPlayerOrientation(color types.Color, id int) (types.Angle, bool) {
	r, ok := s.GetPlayer(color, id)
	return r.Angle, ok
}

// Frame returns a full copy of the last observed frame, for components
// (the Replacer's blackout-recovery snapshot) that need the whole world
// at once rather than one field at a time.
func (s *Snapshot) Frame() (types.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.ballOK
}
