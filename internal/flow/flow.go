// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package flow sequences the user-facing decision flows: the solo
// preference wizard, the group voting round, and first-run onboarding.
//
// Each controller owns its own preference state and recommendation
// session. Forward transitions are gated on step completeness; a failed
// recommendation call returns the flow to the last input step so the user
// is never stuck on a loading screen.
package flow

import (
	"context"
	"errors"

	"github.com/filmmatch/filmmatch-go/internal/api"
)

// Step is a named position in a flow.
type Step string

const (
	// Solo wizard steps.
	StepGenres  Step = "genres"
	StepMood    Step = "mood"
	StepDetails Step = "details"

	// Group steps.
	StepSetup   Step = "setup"
	StepShare   Step = "share"
	StepMembers Step = "members"

	// Onboarding steps.
	StepVibes        Step = "vibes"
	StepDealbreakers Step = "dealbreakers"
	StepServices     Step = "services"

	// Shared terminal steps.
	StepLoading   Step = "loading"
	StepNarrowing Step = "narrowing"
	StepVoting    Step = "voting"
	StepResults   Step = "results"
	StepDone      Step = "done"
)

var (
	// ErrWrongStep is returned when an operation is invoked outside the
	// step it belongs to.
	ErrWrongStep = errors.New("flow: operation not valid in current step")

	// ErrNoSession is returned when a session-scoped operation runs
	// before a recommendation exists.
	ErrNoSession = errors.New("flow: no recommendation session")

	// ErrTooManyMembers is returned when a group already has the maximum
	// number of members.
	ErrTooManyMembers = errors.New("flow: group is full")

	// ErrTooFewMembers is returned when a group submission has fewer
	// members than a group needs.
	ErrTooFewMembers = errors.New("flow: group needs at least two members")
)

// Group size bounds for a voting round.
const (
	minGroupMembers = 2
	maxGroupMembers = 6
)

// Backend is the slice of the gateway client the solo flow drives.
// Both *api.Client and *api.BreakerClient satisfy it.
type Backend interface {
	CreateRecommendation(ctx context.Context, req *api.RecommendationRequest) (*api.RecommendationResponse, error)
	Refine(ctx context.Context, sessionID string, req *api.NarrowRequest) (*api.RecommendationResponse, error)
	Select(ctx context.Context, sessionID string, req *api.SelectionRequest) error
	AddToWatchlist(ctx context.Context, tmdbID int) error
}

// GroupBackend extends Backend with the group session endpoints.
type GroupBackend interface {
	Backend
	CreateGroup(ctx context.Context, name string) (*api.GroupResponse, error)
	SubmitGroupPreferences(ctx context.Context, groupID string, prefs *api.GroupMemberPreferences) error
}

// candidateList flattens a session into the fixed candidate order used by
// both the narrowing deck and the voting ballot: best pick first, then the
// additional picks in server order.
func candidateList(session *api.RecommendationResponse) []api.MovieSummary {
	out := make([]api.MovieSummary, 0, 1+len(session.AdditionalPicks))
	out = append(out, session.BestPick)
	out = append(out, session.AdditionalPicks...)
	return out
}
