// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package vote implements the group voting round over a recommendation's
// candidate list.
//
// Voting is a single ledger: one thumbs up/down per candidate, not per
// member. The candidate order is fixed at construction and decides the
// winner when more than one candidate is voted up.
package vote

import (
	"errors"
	"fmt"
	"sync"

	"github.com/filmmatch/filmmatch-go/internal/api"
	"github.com/filmmatch/filmmatch-go/internal/metrics"
)

var (
	// ErrUnknownCandidate is returned by Toggle for a tmdb id that is not
	// on the ballot.
	ErrUnknownCandidate = errors.New("vote: candidate is not on the ballot")

	// ErrIncomplete is returned by Submit while any candidate is still
	// unvoted.
	ErrIncomplete = errors.New("vote: not every candidate has been voted on")
)

// Ballot records one up/down vote per candidate. Votes are tri-state:
// repeating the same direction clears the vote, voting the opposite
// direction replaces it directly. Safe for concurrent use.
type Ballot struct {
	mu         sync.Mutex
	candidates []api.MovieSummary
	votes      map[int]bool
}

// New builds a ballot over candidates in the given fixed order.
func New(candidates []api.MovieSummary) *Ballot {
	return &Ballot{
		candidates: append([]api.MovieSummary(nil), candidates...),
		votes:      make(map[int]bool, len(candidates)),
	}
}

// Candidates returns a copy of the ballot's fixed candidate order.
func (b *Ballot) Candidates() []api.MovieSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.MovieSummary(nil), b.candidates...)
}

// Toggle records a vote for one candidate. Voting the same direction a
// candidate already has clears that candidate's vote; voting the other
// direction overrides it in place.
func (b *Ballot) Toggle(tmdbID int, positive bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.onBallot(tmdbID) {
		return fmt.Errorf("%w: tmdb_id %d", ErrUnknownCandidate, tmdbID)
	}

	prev, voted := b.votes[tmdbID]
	if voted && prev == positive {
		delete(b.votes, tmdbID)
		metrics.VotesTotal.WithLabelValues("cleared").Inc()
		return nil
	}
	b.votes[tmdbID] = positive
	if positive {
		metrics.VotesTotal.WithLabelValues("up").Inc()
	} else {
		metrics.VotesTotal.WithLabelValues("down").Inc()
	}
	return nil
}

// Vote reports the current vote for a candidate. voted is false when the
// candidate is unvoted or unknown.
func (b *Ballot) Vote(tmdbID int) (positive, voted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	positive, voted = b.votes[tmdbID]
	return positive, voted
}

// Complete reports whether every candidate has a vote. Submit is only
// permitted once this holds.
func (b *Ballot) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.complete()
}

// Submit resolves the winner: the first candidate in ballot order with a
// positive vote. found is false when no candidate was voted up; callers
// fall back to the recommendation's original best pick in that case.
func (b *Ballot) Submit() (winner api.MovieSummary, found bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.complete() {
		return api.MovieSummary{}, false, ErrIncomplete
	}
	for _, c := range b.candidates {
		if b.votes[c.TMDBID] {
			return c, true, nil
		}
	}
	return api.MovieSummary{}, false, nil
}

func (b *Ballot) complete() bool {
	for _, c := range b.candidates {
		if _, voted := b.votes[c.TMDBID]; !voted {
			return false
		}
	}
	return true
}

func (b *Ballot) onBallot(tmdbID int) bool {
	for _, c := range b.candidates {
		if c.TMDBID == tmdbID {
			return true
		}
	}
	return false
}
