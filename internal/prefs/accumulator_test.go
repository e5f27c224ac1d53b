// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package prefs

import (
	"reflect"
	"testing"

	"github.com/filmmatch/filmmatch-go/internal/api"
)

func TestSettersReplaceWholeField(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetGenres([]string{"Action", "Comedy"})
	a.SetGenres([]string{"Drama"})

	if got := a.Profile().LikesGenres; !reflect.DeepEqual(got, []string{"Drama"}) {
		t.Errorf("LikesGenres = %v, want replacement, not merge", got)
	}
}

func TestSetDealbreakersDropsDuplicatesKeepsOrder(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetDealbreakers([]string{"jump scares", "subtitles", "jump scares", "gore"})

	want := []string{"jump scares", "subtitles", "gore"}
	if got := a.Profile().Dealbreakers; !reflect.DeepEqual(got, want) {
		t.Errorf("Dealbreakers = %v, want %v", got, want)
	}
}

func TestMergeContextIsPartial(t *testing.T) {
	t.Parallel()

	a := New()
	occasion := "date night"
	a.MergeContext(ContextPatch{Occasion: &occasion})

	wantNew := true
	a.MergeContext(ContextPatch{WantSomethingNew: &wantNew})

	ctx := a.Context()
	if ctx.Occasion != "date night" {
		t.Errorf("Occasion = %q, want preserved across partial merges", ctx.Occasion)
	}
	if !ctx.WantSomethingNew {
		t.Error("WantSomethingNew = false, want true after merge")
	}
}

func TestResetRestoresEmptyDefaults(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetName("Sam")
	a.SetGenres([]string{"Horror"})
	a.SetDislikedGenres([]string{"Romance"})
	a.SetMood([]string{"Dark"})
	a.SetDealbreakers([]string{"clowns"})
	a.SetFavoriteActors([]string{"Toni Collette"})
	a.SetFavoriteDirectors([]string{"Ari Aster"})
	a.SetFreeText("something unsettling")
	maxRuntime := 120
	a.SetConstraints(&api.Constraints{MaxRuntimeMin: &maxRuntime})
	minYear := 1990
	a.SetYearRange(&api.YearRange{Min: &minYear})
	energy := "low"
	a.MergeContext(ContextPatch{Energy: &energy})

	a.Reset()

	profile := a.Profile()
	want := api.UserProfile{
		LikesGenres:       []string{},
		DislikesGenres:    []string{},
		Dealbreakers:      []string{},
		FavoriteActors:    []string{},
		FavoriteDirectors: []string{},
		Mood:              []string{},
	}
	if !reflect.DeepEqual(profile, want) {
		t.Errorf("profile after Reset() = %+v, want empty defaults %+v", profile, want)
	}
	if a.FreeText() != "" {
		t.Errorf("free text after Reset() = %q, want empty", a.FreeText())
	}
	if a.Context() != (api.Context{}) {
		t.Errorf("context after Reset() = %+v, want zero value", a.Context())
	}
}

func TestProfileReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	a := New()
	a.SetGenres([]string{"Thriller"})

	p := a.Profile()
	p.LikesGenres[0] = "mutated"

	if got := a.Profile().LikesGenres[0]; got != "Thriller" {
		t.Errorf("internal state mutated through returned copy: %q", got)
	}
}

func TestSetterInputIsNotAliased(t *testing.T) {
	t.Parallel()

	a := New()
	input := []string{"Action"}
	a.SetGenres(input)
	input[0] = "mutated"

	if got := a.Profile().LikesGenres[0]; got != "Action" {
		t.Errorf("accumulator aliased caller slice: %q", got)
	}
}
