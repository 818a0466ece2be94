package optimistic

import (
	"fmt"

	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
)

// Mutation is one user-triggered change. The concrete types in this file are
// the only implementations.
type Mutation interface {
	// Key identifies the record the mutation touches.
	Key() string
	// Command is the remote request that confirms the mutation.
	Command() remote.Command

	apply(*state.Store) error
	revert(*state.Store)
	confirm(*state.Store)
}

// CreateVideo appends a new record before the endpoint stores it.
type CreateVideo struct {
	Video model.Video
}

// NewCreateVideo builds a create mutation for v, forcing the Reviewed status.
func NewCreateVideo(v model.Video) *CreateVideo {
	v.Status = model.Reviewed
	return &CreateVideo{Video: v}
}

func (m *CreateVideo) Key() string             { return "video/" + string(m.Video.ID) }
func (m *CreateVideo) Command() remote.Command { return remote.NewCreateCommand(m.Video) }

func (m *CreateVideo) apply(s *state.Store) error {
	s.Append(m.Video)
	return nil
}

func (m *CreateVideo) revert(s *state.Store) { s.RemoveAll(m.Video.ID) }
func (m *CreateVideo) confirm(*state.Store)  {}

// DeleteVideo removes a record before the endpoint deletes it.
type DeleteVideo struct {
	ID model.ID

	removed []model.Video
	applied bool
}

// NewDeleteVideo builds a delete mutation for id.
func NewDeleteVideo(id model.ID) *DeleteVideo {
	return &DeleteVideo{ID: id}
}

// Removed returns the records taken out of the mirror, if any.
func (m *DeleteVideo) Removed() []model.Video {
	if !m.applied {
		return nil
	}
	return m.removed
}

func (m *DeleteVideo) Key() string             { return "video/" + string(m.ID) }
func (m *DeleteVideo) Command() remote.Command { return remote.DeleteCommand{ID: m.ID} }

func (m *DeleteVideo) apply(s *state.Store) error {
	removed := s.Remove(m.ID)
	if len(removed) == 0 {
		return fmt.Errorf("delete %s: %w", m.ID, state.ErrNotFound)
	}
	m.removed = removed
	m.applied = true
	return nil
}

func (m *DeleteVideo) revert(s *state.Store) {
	if !m.applied {
		return
	}
	for _, v := range m.removed {
		s.Append(v)
	}
	m.applied = false
}

func (m *DeleteVideo) confirm(*state.Store) {}

// UpdateStatus sets a record's status before the endpoint records it.
type UpdateStatus struct {
	ID     model.ID
	Status model.Status

	prior   model.Status
	applied bool
}

// NewUpdateStatus builds a status mutation.
func NewUpdateStatus(id model.ID, status model.Status) *UpdateStatus {
	return &UpdateStatus{ID: id, Status: status}
}

// Prior returns the status captured when the mutation was applied.
func (m *UpdateStatus) Prior() (model.Status, bool) {
	return m.prior, m.applied
}

func (m *UpdateStatus) Key() string { return "video/" + string(m.ID) }

func (m *UpdateStatus) Command() remote.Command {
	return remote.UpdateStatusCommand{ID: m.ID, NewStatus: m.Status}
}

func (m *UpdateStatus) apply(s *state.Store) error {
	prior, err := s.SetStatus(m.ID, m.Status)
	if err != nil {
		return err
	}
	m.prior = prior
	m.applied = true
	return nil
}

func (m *UpdateStatus) revert(s *state.Store) {
	if !m.applied {
		return
	}
	// The record may have been deleted meanwhile; nothing to restore then.
	_, _ = s.SetStatus(m.ID, m.prior)
	m.applied = false
}

func (m *UpdateStatus) confirm(*state.Store) {}

// UpdateProfileNames stores slot labels. It changes the mirror only on ack.
type UpdateProfileNames struct {
	User     string
	Platform model.Platform
	Names    model.ProfileNames
}

// NewUpdateProfileNames builds a profile-label mutation.
func NewUpdateProfileNames(user string, platform model.Platform, names model.ProfileNames) *UpdateProfileNames {
	return &UpdateProfileNames{User: user, Platform: platform, Names: names}
}

func (m *UpdateProfileNames) Key() string {
	return "names/" + m.User + "/" + string(m.Platform)
}

func (m *UpdateProfileNames) Command() remote.Command {
	return remote.UpdateProfileNamesCommand{User: m.User, Platform: m.Platform, ProfileNames: m.Names}
}

func (m *UpdateProfileNames) apply(*state.Store) error { return nil }
func (m *UpdateProfileNames) revert(*state.Store)      {}

func (m *UpdateProfileNames) confirm(s *state.Store) {
	s.SetProfileNames(m.User, m.Platform, m.Names)
}
