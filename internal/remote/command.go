package remote

import (
	"encoding/json"
	"fmt"

	"github.com/five82/mamba/internal/model"
)

// Command is a mutating request. The concrete types below are the only
// implementations.
type Command interface {
	Action() string
	isCommand()
}

// CreateCommand appends a new row.
type CreateCommand struct {
	ID       model.ID       `json:"id"`
	Person   string         `json:"person"`
	Platform model.Platform `json:"platform"`
	Profile  model.Slot     `json:"profile"`
	Title    string         `json:"title"`
	Link     string         `json:"link"`
}

// DeleteCommand removes the row with ID.
type DeleteCommand struct {
	ID model.ID `json:"id"`
}

// UpdateStatusCommand sets a row's status.
type UpdateStatusCommand struct {
	ID        model.ID     `json:"id"`
	NewStatus model.Status `json:"newStatus"`
}

// UpdateProfileNamesCommand stores the slot labels for a user and platform.
type UpdateProfileNamesCommand struct {
	User         string             `json:"user"`
	Platform     model.Platform     `json:"platform"`
	ProfileNames model.ProfileNames `json:"profileNames"`
}

func (CreateCommand) Action() string             { return "create" }
func (DeleteCommand) Action() string             { return "delete" }
func (UpdateStatusCommand) Action() string       { return "updateStatus" }
func (UpdateProfileNamesCommand) Action() string { return "updateProfileNames" }

func (CreateCommand) isCommand()             {}
func (DeleteCommand) isCommand()             {}
func (UpdateStatusCommand) isCommand()       {}
func (UpdateProfileNamesCommand) isCommand() {}

// NewCreateCommand copies the wire fields out of v.
func NewCreateCommand(v model.Video) CreateCommand {
	return CreateCommand{
		ID:       v.ID,
		Person:   v.Person,
		Platform: v.Platform,
		Profile:  v.Profile,
		Title:    v.Title,
		Link:     v.Link,
	}
}

// encodeCommand flattens cmd and its action tag into one JSON object.
func encodeCommand(cmd Command) ([]byte, error) {
	fields, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Action(), err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(fields, &obj); err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Action(), err)
	}
	action, _ := json.Marshal(cmd.Action())
	obj["action"] = action
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.Action(), err)
	}
	return out, nil
}
