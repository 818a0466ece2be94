package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/mamba/internal/model"
)

// ErrNotFound is returned when a mutation targets an id the mirror lacks.
var ErrNotFound = errors.New("video not found")

// Snapshot is a point-in-time copy of the mirror.
type Snapshot struct {
	Videos              []model.Video
	ProfileConfig       model.ProfileConfig
	Passwords           model.Passwords
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the endpoint has failed more than once in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Find returns the video with id.
func (s Snapshot) Find(id model.ID) (model.Video, bool) {
	for _, v := range s.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return model.Video{}, false
}

// Store is the local mirror of the remote records.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// ReplaceAll overwrites videos, profile config and passwords in one step.
func (s *Store) ReplaceAll(snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Videos = cloneVideos(snap.Videos)
	s.snapshot.ProfileConfig = snap.ProfileConfig.Clone()
	s.snapshot.Passwords = snap.Passwords.Clone()
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// RecordError notes a failed fetch. Previous data is kept.
func (s *Store) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Clear empties the mirror, as when the user leaves the dashboard.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a deep copy of the current mirror.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Videos = cloneVideos(s.snapshot.Videos)
	snap.ProfileConfig = s.snapshot.ProfileConfig.Clone()
	snap.Passwords = s.snapshot.Passwords.Clone()
	return snap
}

// Append adds v to the end of the collection.
func (s *Store) Append(v model.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Videos = append(s.snapshot.Videos, v)
}

// Remove deletes every video with id and returns them in mirror order.
// Timestamp ids can collide, so a delete takes all rows that carry one.
func (s *Store) Remove(id model.ID) []model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []model.Video
	kept := make([]model.Video, 0, len(s.snapshot.Videos))
	for _, v := range s.snapshot.Videos {
		if v.ID == id {
			removed = append(removed, v)
			continue
		}
		kept = append(kept, v)
	}
	if removed != nil {
		s.snapshot.Videos = kept
	}
	return removed
}

// RemoveAll deletes every video with id and reports how many were removed.
func (s *Store) RemoveAll(id model.ID) int {
	return len(s.Remove(id))
}

// SetStatus replaces the status of video id and returns the previous value.
func (s *Store) SetStatus(id model.ID, status model.Status) (model.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Videos {
		if s.snapshot.Videos[i].ID == id {
			prior := s.snapshot.Videos[i].Status
			s.snapshot.Videos[i].Status = status
			return prior, nil
		}
	}
	return "", fmt.Errorf("set status %s: %w", id, ErrNotFound)
}

// SetProfileNames stores the slot labels for user and platform.
func (s *Store) SetProfileNames(user string, platform model.Platform, names model.ProfileNames) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.ProfileConfig == nil {
		s.snapshot.ProfileConfig = model.ProfileConfig{}
	}
	byPlatform := s.snapshot.ProfileConfig[user]
	if byPlatform == nil {
		byPlatform = map[model.Platform]model.ProfileNames{}
		s.snapshot.ProfileConfig[user] = byPlatform
	}
	byPlatform[platform] = names
}

func cloneVideos(items []model.Video) []model.Video {
	if len(items) == 0 {
		return nil
	}
	dup := make([]model.Video, len(items))
	copy(dup, items)
	return dup
}
