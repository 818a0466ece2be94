package view

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mamba/internal/model"
)

func video(id string, person string, platform model.Platform, slot model.Slot, status model.Status) model.Video {
	return model.Video{ID: model.ID(id), Person: person, Platform: platform, Profile: slot, Title: "t" + id, Link: "l" + id, Status: status}
}

func TestProject_ScenarioTwoOfThree(t *testing.T) {
	videos := []model.Video{
		video("1", "Dikshansh", model.Instagram, model.Slot1, model.Uploaded),
		video("2", "Dikshansh", model.Instagram, model.Slot1, model.Uploaded),
		video("3", "Dikshansh", model.Instagram, model.Slot1, model.Reviewed),
	}

	sections := Project(videos, "Dikshansh", model.Instagram, nil)
	require.Len(t, sections, 3)

	first := sections[0]
	assert.Equal(t, model.Slot1, first.Slot)
	assert.Equal(t, "Profile 1", first.Label)
	assert.Equal(t, "2/3 Uploaded", first.CountLabel())
	assert.Equal(t, "66.67%", first.PercentLabel())
	assert.InDelta(t, 2.0/3.0, first.Progress, 1e-9)

	assert.Equal(t, "0/0 Uploaded", sections[1].CountLabel())
	assert.Equal(t, "0%", sections[1].PercentLabel())
	assert.Zero(t, sections[2].Progress)
}

func TestProject_LabelsFromConfig(t *testing.T) {
	cfg := model.ProfileConfig{"Dikshansh": {model.TikTok: {Profile1: "Main", Profile3: " "}}}

	sections := Project(nil, "Dikshansh", model.TikTok, cfg)
	assert.Equal(t, "Main", sections[0].Label)
	assert.Equal(t, "Profile 2", sections[1].Label)
	assert.Equal(t, "Profile 3", sections[2].Label)
	assert.Equal(t, model.Slot1, sections[0].Slot, "slot key never changes")

	other := Project(nil, "Dikshansh", model.Instagram, cfg)
	assert.Equal(t, "Profile 1", other[0].Label)

	assert.Equal(t, [3]string{"Main", "Profile 2", "Profile 3"}, SlotLabels(cfg, "Dikshansh", model.TikTok))
}

func TestProject_FiltersUserAndPlatformAndDropsUnknownSlots(t *testing.T) {
	videos := []model.Video{
		video("1", "Dikshansh", model.Instagram, model.Slot2, model.Reviewed),
		video("2", "Someone", model.Instagram, model.Slot2, model.Reviewed),
		video("3", "Dikshansh", model.TikTok, model.Slot2, model.Reviewed),
		video("4", "Dikshansh", model.Instagram, "Profile 4", model.Uploaded),
	}

	sections := Project(videos, "Dikshansh", model.Instagram, nil)
	require.Len(t, sections, 3)
	assert.Equal(t, 0, sections[0].Total)
	require.Equal(t, 1, sections[1].Total)
	assert.Equal(t, model.ID("1"), sections[1].Videos[0].ID)
	assert.Equal(t, 0, sections[2].Total)
}

func TestProject_PartitionAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	people := []string{"Dikshansh", "Other"}
	statuses := []model.Status{model.Uploaded, model.Reviewed, "weird"}

	for round := 0; round < 50; round++ {
		var videos []model.Video
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			slot := model.Slots()[rng.Intn(3)]
			videos = append(videos, video(
				fmt.Sprintf("%d-%d", round, i),
				people[rng.Intn(2)],
				model.Platforms()[rng.Intn(2)],
				slot,
				statuses[rng.Intn(3)],
			))
		}

		for _, platform := range model.Platforms() {
			sections := Project(videos, "Dikshansh", platform, nil)

			var filtered int
			for _, v := range videos {
				if v.Person == "Dikshansh" && v.Platform == platform {
					filtered++
				}
			}

			seen := map[model.ID]int{}
			var grouped int
			for _, s := range sections {
				assert.LessOrEqual(t, s.Uploaded, s.Total)
				assert.GreaterOrEqual(t, s.Progress, 0.0)
				assert.LessOrEqual(t, s.Progress, 1.0)
				if s.Total == 0 {
					assert.Zero(t, s.Progress)
				}
				for _, v := range s.Videos {
					seen[v.ID]++
					assert.Equal(t, s.Slot, v.Profile)
				}
				grouped += s.Total
			}
			assert.Equal(t, filtered, grouped, "every filtered record lands in exactly one slot")
			for id, n := range seen {
				assert.Equal(t, 1, n, "record %s grouped more than once", id)
			}
		}
	}
}

func TestProject_DoesNotAliasInput(t *testing.T) {
	videos := []model.Video{video("1", "u", model.Instagram, model.Slot1, model.Reviewed)}
	sections := Project(videos, "u", model.Instagram, nil)
	videos[0].Status = model.Uploaded
	assert.Equal(t, model.Reviewed, sections[0].Videos[0].Status)
}

func TestTotals(t *testing.T) {
	u, n := Totals([]Section{{Uploaded: 1, Total: 2}, {Uploaded: 3, Total: 3}})
	assert.Equal(t, 4, u)
	assert.Equal(t, 5, n)
}

func TestPasswords(t *testing.T) {
	pw := model.Passwords{"u": {model.Instagram: {{Profile: "Profile 1", Name: "main", Password: "p"}}}}
	got := Passwords(pw, "u", model.Instagram)
	require.Len(t, got, 1)
	got[0].Password = "changed"
	assert.Equal(t, "p", pw["u"][model.Instagram][0].Password)
	assert.Empty(t, Passwords(pw, "u", model.TikTok))
	assert.Empty(t, Passwords(nil, "x", model.TikTok))
}
