// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/filmmatch/filmmatch-go/internal/api"
	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/prefs"
	"github.com/filmmatch/filmmatch-go/internal/validation"
	"github.com/filmmatch/filmmatch-go/internal/vote"
)

// Group runs the multi-viewer flow: create a shareable session, collect
// each member's preferences, request a group recommendation, then vote
// the candidates down to one movie.
type Group struct {
	mu      sync.Mutex
	backend GroupBackend

	step     Step
	groupID  string
	joinCode string
	members  []*prefs.Accumulator
	session  *api.RecommendationResponse
	ballot   *vote.Ballot
	final    *api.MovieSummary
}

type memberGate struct {
	Name   string   `validate:"required"`
	Genres []string `validate:"required,min=1"`
	Moods  []string `validate:"required,min=1"`
}

// NewGroup builds a group flow at the setup step.
func NewGroup(backend GroupBackend) *Group {
	return &Group{
		backend: backend,
		step:    StepSetup,
	}
}

// Step reports the flow's current step.
func (f *Group) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Begin creates the group session and moves to the share step. Server
// registration is best-effort: if it fails the flow continues with a
// locally generated join code, since sharing is a convenience and never
// blocks the night.
func (f *Group) Begin(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepSetup {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	resp, err := f.backend.CreateGroup(ctx, name)
	if err != nil || resp == nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("group registration failed, using local join code")
		f.joinCode = localJoinCode()
	} else {
		f.groupID = resp.ID
		f.joinCode = resp.JoinCode
	}
	f.step = StepShare
	return nil
}

// JoinCode returns the code other members use to join.
func (f *Group) JoinCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joinCode
}

// Proceed moves from the share step to member entry.
func (f *Group) Proceed() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepShare {
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	f.step = StepMembers
	return nil
}

// AddMember appends a blank member and returns its accumulator for the
// member's wizard to fill in. Groups hold at most six members.
func (f *Group) AddMember() (*prefs.Accumulator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepMembers {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if len(f.members) >= maxGroupMembers {
		return nil, ErrTooManyMembers
	}
	m := prefs.New()
	f.members = append(f.members, m)
	return m, nil
}

// RemoveMember drops the member at index i.
func (f *Group) RemoveMember(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i < 0 || i >= len(f.members) {
		return fmt.Errorf("flow: no member at index %d", i)
	}
	f.members = append(f.members[:i], f.members[i+1:]...)
	return nil
}

// Members returns the member accumulators in join order.
func (f *Group) Members() []*prefs.Accumulator {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*prefs.Accumulator(nil), f.members...)
}

// MemberComplete reports whether member i has a name, at least one liked
// genre, and at least one mood. Incomplete members block submission.
func (f *Group) MemberComplete(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i < 0 || i >= len(f.members) {
		return fmt.Errorf("flow: no member at index %d", i)
	}
	return memberComplete(f.members[i])
}

func memberComplete(m *prefs.Accumulator) error {
	p := m.Profile()
	return validation.ValidateStruct(memberGate{
		Name:   p.Name,
		Genres: p.LikesGenres,
		Moods:  p.Mood,
	})
}

// Submit requests a group recommendation over all members. Every member
// must be complete and the group must have two to six members. Member
// preferences are mirrored to the server group when one was registered;
// that mirror is best-effort. On failure the flow returns to the members
// step.
func (f *Group) Submit(ctx context.Context) (*api.RecommendationResponse, error) {
	f.mu.Lock()
	if f.step != StepMembers {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if len(f.members) < minGroupMembers {
		f.mu.Unlock()
		return nil, ErrTooFewMembers
	}
	users := make([]api.UserProfile, 0, len(f.members))
	for i, m := range f.members {
		if err := memberComplete(m); err != nil {
			f.mu.Unlock()
			return nil, fmt.Errorf("member %d: %w", i+1, err)
		}
		users = append(users, m.Profile())
	}
	groupID := f.groupID
	f.step = StepLoading
	f.mu.Unlock()

	if groupID != "" {
		for _, u := range users {
			mp := &api.GroupMemberPreferences{
				LikesGenres:    u.LikesGenres,
				DislikesGenres: u.DislikesGenres,
				Mood:           u.Mood,
			}
			if err := f.backend.SubmitGroupPreferences(ctx, groupID, mp); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("group_id", groupID).Msg("group preference mirror failed")
				break
			}
		}
	}

	resp, err := f.backend.CreateRecommendation(ctx, &api.RecommendationRequest{
		Mode:  api.ModeGroup,
		Users: users,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.step = StepMembers
		return nil, err
	}
	f.session = resp
	f.step = StepResults
	return resp, nil
}

// Session returns the group recommendation session, nil before the first
// successful submission.
func (f *Group) Session() *api.RecommendationResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// StartVoting branches from results into a ballot over the session's
// candidates, best pick first.
func (f *Group) StartVoting() (*vote.Ballot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepResults {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if f.session == nil {
		return nil, ErrNoSession
	}
	f.ballot = vote.New(candidateList(f.session))
	f.step = StepVoting
	return f.ballot, nil
}

// FinishVoting submits the ballot and converges back to results. If no
// candidate was voted up the session's original best pick stands. The
// winner is reported to the server as the session's selection,
// best-effort.
func (f *Group) FinishVoting(ctx context.Context) (api.MovieSummary, error) {
	f.mu.Lock()
	ballot := f.ballot
	session := f.session
	if f.step != StepVoting || ballot == nil {
		step := f.step
		f.mu.Unlock()
		return api.MovieSummary{}, fmt.Errorf("%w: %s", ErrWrongStep, step)
	}
	f.mu.Unlock()

	winner, found, err := ballot.Submit()
	if err != nil {
		return api.MovieSummary{}, err
	}
	if found {
		// Only a genuinely voted-up candidate counts as the group's
		// selection; the no-winner fallback is a display default.
		if err := f.backend.Select(ctx, session.SessionID, &api.SelectionRequest{TMDBID: winner.TMDBID}); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("tmdb_id", winner.TMDBID).Msg("selection report failed")
		}
	} else {
		winner = session.BestPick
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.final = &winner
	f.step = StepResults
	return winner, nil
}

// FinalPick returns the voted winner, ok false before voting finishes.
func (f *Group) FinalPick() (api.MovieSummary, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.final == nil {
		return api.MovieSummary{}, false
	}
	return *f.final, true
}

// StartOver discards the group, its members, and any session, returning
// to setup.
func (f *Group) StartOver() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.groupID = ""
	f.joinCode = ""
	f.members = nil
	f.session = nil
	f.ballot = nil
	f.final = nil
	f.step = StepSetup
}

// localJoinCode derives a short shareable code when the server could not
// issue one.
func localJoinCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
