package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies a video record.
type ID string

// NewID returns a client-generated id: the current Unix time in milliseconds.
func NewID(now time.Time) ID {
	return ID(strconv.FormatInt(now.UnixMilli(), 10))
}

// UnmarshalJSON accepts both string and numeric ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Platform is the social platform a video belongs to.
type Platform string

const (
	Instagram Platform = "Instagram"
	TikTok    Platform = "TikTok"
)

// Platforms lists the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{Instagram, TikTok}
}

// ParsePlatform matches a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	trimmed := strings.TrimSpace(s)
	for _, p := range Platforms() {
		if strings.EqualFold(trimmed, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// Next returns the platform after p, wrapping around.
func (p Platform) Next() Platform {
	if p == Instagram {
		return TikTok
	}
	return Instagram
}

// Status is the review/upload state of a video.
type Status string

const (
	Uploaded Status = "Uploaded"
	Reviewed Status = "Reviewed"
)

// Toggle flips between the two statuses. Anything that is not Uploaded
// becomes Uploaded.
func (s Status) Toggle() Status {
	if s == Uploaded {
		return Reviewed
	}
	return Uploaded
}

// Video is a single tracked short-form video.
type Video struct {
	ID       ID       `json:"id"`
	Person   string   `json:"person"`
	Platform Platform `json:"platform"`
	Profile  Slot     `json:"profile"`
	Title    string   `json:"title"`
	Link     string   `json:"link"`
	Status   Status   `json:"status"`
}

// Draft holds the user-entered fields for a new video.
type Draft struct {
	Person   string
	Platform Platform
	Profile  Slot
	Title    string
	Link     string
}

// Validate trims the draft and reports the first missing field.
func (d Draft) Validate() (Draft, error) {
	d.Person = strings.TrimSpace(d.Person)
	d.Title = strings.TrimSpace(d.Title)
	d.Link = strings.TrimSpace(d.Link)
	switch {
	case d.Person == "":
		return d, &ValidationError{Field: "person"}
	case d.Title == "":
		return d, &ValidationError{Field: "title"}
	case d.Link == "":
		return d, &ValidationError{Field: "link"}
	}
	if !d.Profile.Valid() {
		return d, fmt.Errorf("%w: %q", ErrUnknownSlot, d.Profile)
	}
	if _, err := ParsePlatform(string(d.Platform)); err != nil {
		return d, err
	}
	return d, nil
}

// Video builds the record the draft describes. New videos start as Reviewed.
func (d Draft) Video(id ID) Video {
	return Video{
		ID:       id,
		Person:   d.Person,
		Platform: d.Platform,
		Profile:  d.Profile,
		Title:    d.Title,
		Link:     d.Link,
		Status:   Reviewed,
	}
}
