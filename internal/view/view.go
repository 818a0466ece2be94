// Package view projects the mirror into what the dashboard shows: one
// section per profile slot with its videos, counts and progress.
//
// Projection is pure and recomputed from scratch on every call; nothing is
// cached or diffed between renders.
package view

import (
	"math"
	"strconv"

	"github.com/five82/mamba/internal/model"
)

// Section is the view-model for one profile slot.
type Section struct {
	Slot     model.Slot
	Label    string
	Videos   []model.Video
	Total    int
	Uploaded int
	// Progress is Uploaded/Total in [0,1]; 0 when Total is 0.
	Progress float64
}

// CountLabel renders the counts, e.g. "2/3 Uploaded".
func (s Section) CountLabel() string {
	return strconv.Itoa(s.Uploaded) + "/" + strconv.Itoa(s.Total) + " Uploaded"
}

// PercentLabel renders Progress as a percentage rounded to two decimals,
// e.g. "66.67%".
func (s Section) PercentLabel() string {
	pct := math.Round(s.Progress*10000) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// Project filters videos to user and platform and groups them into the three
// slots, in slot order. Records whose profile is not a known slot are dropped.
func Project(videos []model.Video, user string, platform model.Platform, cfg model.ProfileConfig) []Section {
	names, _ := cfg.Names(user, platform)

	sections := make([]Section, 0, len(model.Slots()))
	index := make(map[model.Slot]int, len(model.Slots()))
	for i, slot := range model.Slots() {
		label := names.Label(slot)
		if label == "" {
			label = string(slot)
		}
		sections = append(sections, Section{Slot: slot, Label: label})
		index[slot] = i
	}

	for _, v := range videos {
		if v.Person != user || v.Platform != platform {
			continue
		}
		i, ok := index[v.Profile]
		if !ok {
			continue
		}
		sections[i].Videos = append(sections[i].Videos, v)
	}

	for i := range sections {
		s := &sections[i]
		s.Total = len(s.Videos)
		for _, v := range s.Videos {
			if v.Status == model.Uploaded {
				s.Uploaded++
			}
		}
		if s.Total > 0 {
			s.Progress = float64(s.Uploaded) / float64(s.Total)
		}
	}
	return sections
}

// Totals sums counts across sections.
func Totals(sections []Section) (uploaded, total int) {
	for _, s := range sections {
		uploaded += s.Uploaded
		total += s.Total
	}
	return uploaded, total
}

// Passwords returns the reference entries for user and platform.
func Passwords(pw model.Passwords, user string, platform model.Platform) []model.PasswordEntry {
	byPlatform, ok := pw[user]
	if !ok {
		return nil
	}
	return append([]model.PasswordEntry(nil), byPlatform[platform]...)
}

// SlotLabels returns the display label of each slot for user and platform,
// falling back to the slot key.
func SlotLabels(cfg model.ProfileConfig, user string, platform model.Platform) [3]string {
	names, _ := cfg.Names(user, platform)
	var out [3]string
	for i, slot := range model.Slots() {
		out[i] = names.Label(slot)
		if out[i] == "" {
			out[i] = string(slot)
		}
	}
	return out
}
