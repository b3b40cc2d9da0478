package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hostel-room-allocation/internal/model"
)

func TestNormalizeOrdinals(t *testing.T) {
	cases := []struct {
		name   string
		traits model.TraitBundle
		want   NormalizedTraits
	}{
		{
			name: "all extremes low",
			traits: model.TraitBundle{
				SleepSchedule:    "early",
				StudyHabits:      "quiet",
				CleanlinessLevel: 1,
				SocialPreference: "introvert",
				NoisePreference:  "quiet",
				VisitorFrequency: "rarely",
			},
			want: NormalizedTraits{
				SleepSchedule: 0, StudyHabits: 0, Cleanliness: 0.2,
				SocialPreference: 0, NoisePreference: 0, VisitorFrequency: 0,
				Hobbies: []string{},
			},
		},
		{
			name: "all extremes high",
			traits: model.TraitBundle{
				SleepSchedule:    "late",
				StudyHabits:      "group",
				CleanlinessLevel: 5,
				SocialPreference: "extrovert",
				NoisePreference:  "noisy",
				VisitorFrequency: "often",
			},
			want: NormalizedTraits{
				SleepSchedule: 1, StudyHabits: 1, Cleanliness: 1,
				SocialPreference: 1, NoisePreference: 1, VisitorFrequency: 1,
				Hobbies: []string{},
			},
		},
		{
			name: "midpoints",
			traits: model.TraitBundle{
				SleepSchedule:    "flexible",
				StudyHabits:      "mixed",
				CleanlinessLevel: 3,
				SocialPreference: "balanced",
				NoisePreference:  "tolerant",
				VisitorFrequency: "sometimes",
			},
			want: NormalizedTraits{
				SleepSchedule: 0.5, StudyHabits: 0.5, Cleanliness: 0.6,
				SocialPreference: 0.5, NoisePreference: 0.5, VisitorFrequency: 0.5,
				Hobbies: []string{},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.traits))
		})
	}
}

func TestNormalizeUnknownValuesAreNeutral(t *testing.T) {
	n := Normalize(model.TraitBundle{
		SleepSchedule:    "whenever",
		StudyHabits:      "",
		SocialPreference: "  BALANCED ",
	})
	assert.Equal(t, 0.5, n.SleepSchedule)
	assert.Equal(t, 0.5, n.StudyHabits)
	assert.Equal(t, 0.5, n.SocialPreference, "values are trimmed and lower-cased before lookup")
}

func TestNormalizeClampsCleanliness(t *testing.T) {
	assert.Equal(t, 0.2, Normalize(model.TraitBundle{CleanlinessLevel: 0}).Cleanliness)
	assert.Equal(t, 0.2, Normalize(model.TraitBundle{CleanlinessLevel: -3}).Cleanliness)
	assert.Equal(t, 1.0, Normalize(model.TraitBundle{CleanlinessLevel: 9}).Cleanliness)
	assert.Equal(t, 0.8, Normalize(model.TraitBundle{CleanlinessLevel: 4}).Cleanliness)
}

func TestNormalizeHobbiesAndMusic(t *testing.T) {
	n := Normalize(model.TraitBundle{
		Hobbies:         []string{" Chess", "reading", "", "CHESS ", "football"},
		MusicPreference: "  Afrobeats ",
	})
	assert.Equal(t, []string{"chess", "football", "reading"}, n.Hobbies)
	assert.Equal(t, "afrobeats", n.MusicPreference)
}

func TestVectorOrder(t *testing.T) {
	n := NormalizedTraits{
		SleepSchedule:    0.1,
		StudyHabits:      0.2,
		Cleanliness:      0.3,
		SocialPreference: 0.4,
		NoisePreference:  0.5,
		VisitorFrequency: 0.6,
	}
	assert.Equal(t, [6]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, n.Vector())
}

func TestSignatureStability(t *testing.T) {
	base := model.TraitBundle{
		SleepSchedule:    "early",
		StudyHabits:      "quiet",
		CleanlinessLevel: 4,
		SocialPreference: "introvert",
		NoisePreference:  "quiet",
		Hobbies:          []string{"reading", "chess"},
		MusicPreference:  "jazz",
		VisitorFrequency: "rarely",
	}
	sig := Normalize(base).Signature()
	assert.Len(t, sig, 16)

	reordered := base
	reordered.Hobbies = []string{"CHESS", "reading"}
	assert.Equal(t, sig, Normalize(reordered).Signature(),
		"hobby listing order must not change the signature")

	changed := base
	changed.CleanlinessLevel = 2
	assert.NotEqual(t, sig, Normalize(changed).Signature())
}
