// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package narrow implements the solo swipe-narrowing state machine.
//
// A recommendation's candidate movies are dealt as a deck. The user keeps
// or rejects the head card until the deck is empty. If more than one movie
// survives, the server refines the session down to a single final pick; if
// refinement fails the original best pick is used so the user always ends
// with a movie.
package narrow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/filmmatch/filmmatch-go/internal/api"
	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/metrics"
)

// refineFeedback is sent with every narrowing refine call so the server
// knows the keep/reject lists came from the swipe deck rather than typed
// feedback.
const refineFeedback = "Narrowed down by swiping. Pick the best match from the kept movies."

// State is the engine's lifecycle phase.
type State int

const (
	// StateAccumulating means the deck still has cards to decide on.
	StateAccumulating State = iota
	// StateAwaitingServerPick means the deck is empty with more than one
	// kept movie and a refine call is required to produce the final pick.
	StateAwaitingServerPick
	// StateDone means a final outcome is available.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateAwaitingServerPick:
		return "awaiting_server_pick"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Decision is a verdict on the current head card.
type Decision int

const (
	// Keep moves the head card to the kept pile.
	Keep Decision = iota
	// Reject moves the head card to the rejected pile.
	Reject
)

func (d Decision) String() string {
	if d == Keep {
		return "keep"
	}
	return "reject"
}

var (
	// ErrNotAccumulating is returned by Decide when the deck is already
	// exhausted.
	ErrNotAccumulating = errors.New("narrow: engine is not accumulating decisions")

	// ErrNotCurrent is returned by Decide when the decision names a movie
	// other than the head of the deck. Decisions are strictly in deck
	// order.
	ErrNotCurrent = errors.New("narrow: decision does not apply to the current candidate")

	// ErrRefineNotNeeded is returned by Resolve when the engine reached
	// its outcome without a server refine.
	ErrRefineNotNeeded = errors.New("narrow: no server refine is pending")

	// ErrRefineInFlight is returned by Resolve while a previous refine
	// call is still outstanding.
	ErrRefineInFlight = errors.New("narrow: refine already in flight")
)

// Refiner narrows a recommendation session down to a single best pick.
// *api.Client and *api.BreakerClient both satisfy it.
type Refiner interface {
	Refine(ctx context.Context, sessionID string, req *api.NarrowRequest) (*api.RecommendationResponse, error)
}

// Engine runs one narrowing pass over a candidate list. It is safe for
// concurrent use.
type Engine struct {
	mu sync.Mutex

	sessionID    string
	originalBest api.MovieSummary
	refiner      Refiner

	deck     []api.MovieSummary
	kept     []api.MovieSummary
	rejected []api.MovieSummary

	state    State
	refining bool

	finalPick *api.MovieSummary
	// refined holds the replacement session returned by a successful
	// refine call, nil otherwise.
	refined *api.RecommendationResponse
}

// New builds an engine over candidates, in order. originalBest is the best
// pick of the recommendation the candidates came from; it is the fallback
// outcome when refinement fails. An empty candidate list completes
// immediately with no pick.
func New(sessionID string, originalBest api.MovieSummary, candidates []api.MovieSummary, refiner Refiner) *Engine {
	e := &Engine{
		sessionID:    sessionID,
		originalBest: originalBest,
		refiner:      refiner,
		deck:         append([]api.MovieSummary(nil), candidates...),
		kept:         []api.MovieSummary{},
		rejected:     []api.MovieSummary{},
	}
	if len(e.deck) == 0 {
		e.state = StateDone
	}
	return e
}

// State reports the current lifecycle phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Current returns the head of the deck, the only candidate a decision may
// apply to. ok is false once the deck is exhausted.
func (e *Engine) Current() (movie api.MovieSummary, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.deck) == 0 {
		return api.MovieSummary{}, false
	}
	return e.deck[0], true
}

// Remaining reports how many candidates are still undecided.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.deck)
}

// Decide applies a verdict to the head candidate. tmdbID must match the
// head card; decisions on any other candidate return ErrNotCurrent and
// change nothing. When the last card is decided the engine transitions to
// StateDone (one or zero survivors) or StateAwaitingServerPick (several
// survivors, Resolve must be called).
func (e *Engine) Decide(tmdbID int, d Decision) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateAccumulating {
		return ErrNotAccumulating
	}
	head := e.deck[0]
	if head.TMDBID != tmdbID {
		return fmt.Errorf("%w: got %d, current is %d", ErrNotCurrent, tmdbID, head.TMDBID)
	}

	e.deck = e.deck[1:]
	if d == Keep {
		e.kept = append(e.kept, head)
	} else {
		e.rejected = append(e.rejected, head)
	}
	metrics.NarrowingDecisionsTotal.WithLabelValues(d.String()).Inc()

	if len(e.deck) > 0 {
		return nil
	}

	switch len(e.kept) {
	case 0:
		// Everything rejected. No pick of our own; callers fall back
		// to the recommendation's original best pick for display.
		e.state = StateDone
	case 1:
		pick := e.kept[0]
		e.finalPick = &pick
		e.state = StateDone
	default:
		e.state = StateAwaitingServerPick
	}
	return nil
}

// Resolve issues the refine call that turns multiple survivors into a
// single final pick. It carries the complete kept and rejected id lists
// accumulated over the whole pass. On success the returned session
// replaces the original and its best pick becomes the outcome. On failure
// the engine still completes, falling back to the original best pick, and
// the error is returned so the caller can notify the user.
//
// Only one Resolve call may be in flight at a time.
func (e *Engine) Resolve(ctx context.Context) (*api.RecommendationResponse, error) {
	e.mu.Lock()
	if e.state != StateAwaitingServerPick {
		e.mu.Unlock()
		return nil, ErrRefineNotNeeded
	}
	if e.refining {
		e.mu.Unlock()
		return nil, ErrRefineInFlight
	}
	e.refining = true
	req := &api.NarrowRequest{
		Feedback:      refineFeedback,
		KeepTMDBIDs:   movieIDs(e.kept),
		RejectTMDBIDs: movieIDs(e.rejected),
	}
	sessionID := e.sessionID
	e.mu.Unlock()

	resp, err := e.refiner.Refine(ctx, sessionID, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.refining = false
	e.state = StateDone
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("session_id", sessionID).
			Int("kept", len(e.kept)).
			Msg("narrowing refine failed, falling back to original best pick")
		pick := e.originalBest
		e.finalPick = &pick
		return nil, err
	}
	e.refined = resp
	pick := resp.BestPick
	e.finalPick = &pick
	return resp, nil
}

// FinalPick returns the outcome once the engine is done. ok is false when
// the engine is still running or every candidate was rejected.
func (e *Engine) FinalPick() (movie api.MovieSummary, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateDone || e.finalPick == nil {
		return api.MovieSummary{}, false
	}
	return *e.finalPick, true
}

// Refined returns the replacement session produced by a successful
// Resolve, or nil if no refine happened or it failed.
func (e *Engine) Refined() *api.RecommendationResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refined
}

// Kept returns a copy of the kept pile in decision order.
func (e *Engine) Kept() []api.MovieSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]api.MovieSummary(nil), e.kept...)
}

// Rejected returns a copy of the rejected pile in decision order.
func (e *Engine) Rejected() []api.MovieSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]api.MovieSummary(nil), e.rejected...)
}

func movieIDs(movies []api.MovieSummary) []int {
	ids := make([]int, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.TMDBID)
	}
	return ids
}
