// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package prefs accumulates in-progress user input across wizard steps.
//
// The accumulator is a pure value container: setters perform whole-field
// replacement (except MergeContext, which merges shallowly) and no
// validation happens here. Minimum-selection thresholds differ by flow, so
// gating is the flow controller's responsibility.
package prefs

import (
	"github.com/filmmatch/filmmatch-go/internal/api"
)

// ContextPatch is a partial context update. Only non-nil fields override
// the accumulated context; absent fields are left untouched.
type ContextPatch struct {
	Occasion         *string
	Energy           *string
	WantSomethingNew *bool
	Familiarity      *string
}

// Accumulator holds one viewer's in-progress preferences. Each flow instance
// owns exactly one accumulator; it is not safe for concurrent use and does
// not need to be, since engine transitions are single-threaded per flow.
type Accumulator struct {
	profile  api.UserProfile
	context  api.Context
	freeText string
}

// New returns an accumulator with every field at its empty default.
func New() *Accumulator {
	a := &Accumulator{}
	a.Reset()
	return a
}

// Reset restores every field to its type-specific empty default, regardless
// of prior mutation history.
func (a *Accumulator) Reset() {
	a.profile = api.UserProfile{
		LikesGenres:       []string{},
		DislikesGenres:    []string{},
		Dealbreakers:      []string{},
		FavoriteActors:    []string{},
		FavoriteDirectors: []string{},
		Mood:              []string{},
	}
	a.context = api.Context{}
	a.freeText = ""
}

// SetName replaces the viewer's display name.
func (a *Accumulator) SetName(name string) {
	a.profile.Name = name
}

// SetGenres replaces the liked-genre selection.
func (a *Accumulator) SetGenres(genres []string) {
	a.profile.LikesGenres = cloneStrings(genres)
}

// SetDislikedGenres replaces the disliked-genre selection.
func (a *Accumulator) SetDislikedGenres(genres []string) {
	a.profile.DislikesGenres = cloneStrings(genres)
}

// SetMood replaces the mood selection.
func (a *Accumulator) SetMood(moods []string) {
	a.profile.Mood = cloneStrings(moods)
}

// SetDealbreakers replaces the dealbreaker list. Order is preserved;
// duplicates are dropped, keeping the first occurrence.
func (a *Accumulator) SetDealbreakers(items []string) {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	a.profile.Dealbreakers = out
}

// SetFavoriteActors replaces the favorite-actor list.
func (a *Accumulator) SetFavoriteActors(actors []string) {
	a.profile.FavoriteActors = cloneStrings(actors)
}

// SetFavoriteDirectors replaces the favorite-director list.
func (a *Accumulator) SetFavoriteDirectors(directors []string) {
	a.profile.FavoriteDirectors = cloneStrings(directors)
}

// SetYearRange replaces the acceptable release-year range. nil clears it.
func (a *Accumulator) SetYearRange(yr *api.YearRange) {
	if yr == nil {
		a.profile.YearRange = nil
		return
	}
	copied := *yr
	a.profile.YearRange = &copied
}

// SetConstraints replaces the hard viewing constraints. nil clears them.
func (a *Accumulator) SetConstraints(c *api.Constraints) {
	if c == nil {
		a.profile.Constraints = nil
		return
	}
	copied := *c
	copied.StreamingServices = cloneStrings(c.StreamingServices)
	a.profile.Constraints = &copied
}

// SetFreeText replaces the free-text preference message.
func (a *Accumulator) SetFreeText(text string) {
	a.freeText = text
}

// MergeContext applies a partial context update. Only fields present in the
// patch override the accumulated context.
func (a *Accumulator) MergeContext(patch ContextPatch) {
	if patch.Occasion != nil {
		a.context.Occasion = *patch.Occasion
	}
	if patch.Energy != nil {
		a.context.Energy = *patch.Energy
	}
	if patch.WantSomethingNew != nil {
		a.context.WantSomethingNew = *patch.WantSomethingNew
	}
	if patch.Familiarity != nil {
		a.context.Familiarity = *patch.Familiarity
	}
}

// Profile returns a copy of the accumulated viewer profile.
func (a *Accumulator) Profile() api.UserProfile {
	p := a.profile
	p.LikesGenres = cloneStrings(a.profile.LikesGenres)
	p.DislikesGenres = cloneStrings(a.profile.DislikesGenres)
	p.Dealbreakers = cloneStrings(a.profile.Dealbreakers)
	p.FavoriteActors = cloneStrings(a.profile.FavoriteActors)
	p.FavoriteDirectors = cloneStrings(a.profile.FavoriteDirectors)
	p.Mood = cloneStrings(a.profile.Mood)
	if a.profile.YearRange != nil {
		yr := *a.profile.YearRange
		p.YearRange = &yr
	}
	if a.profile.Constraints != nil {
		c := *a.profile.Constraints
		c.StreamingServices = cloneStrings(a.profile.Constraints.StreamingServices)
		p.Constraints = &c
	}
	return p
}

// Context returns a copy of the accumulated submission context.
func (a *Accumulator) Context() api.Context {
	return a.context
}

// FreeText returns the free-text preference message.
func (a *Accumulator) FreeText() string {
	return a.freeText
}

// cloneStrings copies a string slice, mapping nil to an empty slice so
// accumulated fields always hold their typed empty default.
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
