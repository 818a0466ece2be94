package model

import (
	"fmt"
	"strings"
)

// Slot is one of the three fixed profile buckets.
type Slot string

const (
	Slot1 Slot = "Profile 1"
	Slot2 Slot = "Profile 2"
	Slot3 Slot = "Profile 3"
)

// Slots returns the slot keys in display order.
func Slots() []Slot {
	return []Slot{Slot1, Slot2, Slot3}
}

// Valid reports whether s is one of the fixed slot keys.
func (s Slot) Valid() bool {
	switch s {
	case Slot1, Slot2, Slot3:
		return true
	}
	return false
}

// Index returns the zero-based position of the slot, or -1.
func (s Slot) Index() int {
	for i, slot := range Slots() {
		if slot == s {
			return i
		}
	}
	return -1
}

// ProfileNames holds the display labels for the three slots.
type ProfileNames struct {
	Profile1 string `json:"profile1"`
	Profile2 string `json:"profile2"`
	Profile3 string `json:"profile3"`
}

// Label returns the display label for slot, or "" when unset.
func (n ProfileNames) Label(slot Slot) string {
	switch slot {
	case Slot1:
		return strings.TrimSpace(n.Profile1)
	case Slot2:
		return strings.TrimSpace(n.Profile2)
	case Slot3:
		return strings.TrimSpace(n.Profile3)
	}
	return ""
}

// Validate trims every label and requires all three.
func (n ProfileNames) Validate() (ProfileNames, error) {
	n.Profile1 = strings.TrimSpace(n.Profile1)
	n.Profile2 = strings.TrimSpace(n.Profile2)
	n.Profile3 = strings.TrimSpace(n.Profile3)
	for i, v := range []string{n.Profile1, n.Profile2, n.Profile3} {
		if v == "" {
			return n, &ValidationError{Field: fmt.Sprintf("profile%d", i+1)}
		}
	}
	return n, nil
}

// ProfileConfig maps user -> platform -> slot labels.
type ProfileConfig map[string]map[Platform]ProfileNames

// Names returns the labels for user and platform.
func (c ProfileConfig) Names(user string, platform Platform) (ProfileNames, bool) {
	byPlatform, ok := c[user]
	if !ok {
		return ProfileNames{}, false
	}
	names, ok := byPlatform[platform]
	return names, ok
}

// Clone returns a deep copy.
func (c ProfileConfig) Clone() ProfileConfig {
	if c == nil {
		return nil
	}
	dup := make(ProfileConfig, len(c))
	for user, byPlatform := range c {
		inner := make(map[Platform]ProfileNames, len(byPlatform))
		for p, names := range byPlatform {
			inner[p] = names
		}
		dup[user] = inner
	}
	return dup
}

// PasswordEntry is read-only reference data shown on the passwords view.
type PasswordEntry struct {
	Profile  string `json:"profile"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Passwords maps user -> platform -> entries in display order.
type Passwords map[string]map[Platform][]PasswordEntry

// Clone returns a deep copy.
func (p Passwords) Clone() Passwords {
	if p == nil {
		return nil
	}
	dup := make(Passwords, len(p))
	for user, byPlatform := range p {
		inner := make(map[Platform][]PasswordEntry, len(byPlatform))
		for platform, entries := range byPlatform {
			inner[platform] = append([]PasswordEntry(nil), entries...)
		}
		dup[user] = inner
	}
	return dup
}

// Snapshot is the full payload fetched from the remote store.
type Snapshot struct {
	Videos        []Video       `json:"videos"`
	ProfileConfig ProfileConfig `json:"profileConfig"`
	Passwords     Passwords     `json:"passwords"`
}
