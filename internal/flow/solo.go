// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/filmmatch/filmmatch-go/internal/api"
	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/narrow"
	"github.com/filmmatch/filmmatch-go/internal/prefs"
	"github.com/filmmatch/filmmatch-go/internal/validation"
)

// Solo runs the single-viewer wizard: genres, mood, details, then a
// recommendation, with an optional swipe-narrowing branch off the results.
type Solo struct {
	mu      sync.Mutex
	backend Backend

	prefs   *prefs.Accumulator
	step    Step
	session *api.RecommendationResponse
	engine  *narrow.Engine
}

type genreGate struct {
	Genres []string `validate:"required,min=1"`
}

type moodGate struct {
	Moods []string `validate:"required,min=1"`
}

// NewSolo builds a solo flow at the genres step with empty preferences.
func NewSolo(backend Backend) *Solo {
	return &Solo{
		backend: backend,
		prefs:   prefs.New(),
		step:    StepGenres,
	}
}

// Step reports the flow's current step.
func (f *Solo) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Preferences exposes the accumulator the wizard steps write into.
func (f *Solo) Preferences() *prefs.Accumulator {
	return f.prefs
}

// Session returns the current recommendation session, nil before the
// first successful submission.
func (f *Solo) Session() *api.RecommendationResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// Next advances one wizard step. The genres step requires at least one
// liked genre and the mood step at least one mood; an incomplete step
// returns validation errors and stays put.
func (f *Solo) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepGenres:
		if err := validation.ValidateStruct(genreGate{Genres: f.prefs.Profile().LikesGenres}); err != nil {
			return err
		}
		f.step = StepMood
	case StepMood:
		if err := validation.ValidateStruct(moodGate{Moods: f.prefs.Profile().Mood}); err != nil {
			return err
		}
		f.step = StepDetails
	default:
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	return nil
}

// Back returns to the previous wizard step. Valid from mood and details
// only.
func (f *Solo) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepMood:
		f.step = StepGenres
	case StepDetails:
		f.step = StepMood
	default:
		return fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	return nil
}

// Submit sends the accumulated preferences for a recommendation. The flow
// sits in the loading step for the duration of the call. On failure it
// returns to the details step so the user can retry; on success it moves
// to results with the new session.
func (f *Solo) Submit(ctx context.Context) (*api.RecommendationResponse, error) {
	f.mu.Lock()
	if f.step != StepDetails {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	profile := f.prefs.Profile()
	if err := validation.ValidateStruct(genreGate{Genres: profile.LikesGenres}); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if err := validation.ValidateStruct(moodGate{Moods: profile.Mood}); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	req := &api.RecommendationRequest{
		Mode:    api.ModeSolo,
		Users:   []api.UserProfile{profile},
		Message: f.prefs.FreeText(),
	}
	if reqCtx := f.prefs.Context(); reqCtx != (api.Context{}) {
		req.Context = &reqCtx
	}
	f.step = StepLoading
	f.mu.Unlock()

	resp, err := f.backend.CreateRecommendation(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.step = StepDetails
		return nil, err
	}
	f.session = resp
	f.step = StepResults
	return resp, nil
}

// StartNarrowing branches from results into the swipe deck over the
// session's candidates.
func (f *Solo) StartNarrowing() (*narrow.Engine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepResults {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, f.step)
	}
	if f.session == nil {
		return nil, ErrNoSession
	}
	f.engine = narrow.New(f.session.SessionID, f.session.BestPick, candidateList(f.session), f.backend)
	f.step = StepNarrowing
	return f.engine, nil
}

// FinishNarrowing converges the narrowing branch back to results. If the
// deck left several survivors this issues the pending refine; a refine
// failure is non-fatal and the engine's fallback pick is used. A
// successful refine replaces the session wholesale. Returns the movie to
// display.
func (f *Solo) FinishNarrowing(ctx context.Context) (api.MovieSummary, error) {
	f.mu.Lock()
	engine := f.engine
	if f.step != StepNarrowing || engine == nil {
		step := f.step
		f.mu.Unlock()
		return api.MovieSummary{}, fmt.Errorf("%w: %s", ErrWrongStep, step)
	}
	f.mu.Unlock()

	if engine.State() == narrow.StateAwaitingServerPick {
		// The engine falls back to the original best pick on error, so
		// the flow still completes.
		if _, err := engine.Resolve(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("narrowing refine failed, keeping original session")
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if refined := engine.Refined(); refined != nil {
		f.session = refined
	}
	f.step = StepResults
	if pick, ok := engine.FinalPick(); ok {
		return pick, nil
	}
	return f.session.BestPick, nil
}

// MarkSelected records the user's final choice against the session.
func (f *Solo) MarkSelected(ctx context.Context, tmdbID int) error {
	f.mu.Lock()
	session := f.session
	f.mu.Unlock()

	if session == nil {
		return ErrNoSession
	}
	return f.backend.Select(ctx, session.SessionID, &api.SelectionRequest{TMDBID: tmdbID})
}

// AddToWatchlist saves a movie for later. Failures are isolated from the
// recommendation flow: the step never changes, and the error is returned
// only so the caller can show a dismissible notice.
func (f *Solo) AddToWatchlist(ctx context.Context, tmdbID int) error {
	if err := f.backend.AddToWatchlist(ctx, tmdbID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("tmdb_id", tmdbID).Msg("watchlist add failed")
		return err
	}
	return nil
}

// StartOver resets the accumulator to its empty defaults, discards the
// session and any narrowing state, and returns to the first step.
func (f *Solo) StartOver() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prefs.Reset()
	f.session = nil
	f.engine = nil
	f.step = StepGenres
}
