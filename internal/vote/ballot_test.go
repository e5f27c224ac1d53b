// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package vote

import (
	"errors"
	"testing"

	"github.com/filmmatch/filmmatch-go/internal/api"
)

func ballot(ids ...int) *Ballot {
	cands := make([]api.MovieSummary, 0, len(ids))
	for _, id := range ids {
		cands = append(cands, api.MovieSummary{TMDBID: id, Title: "movie"})
	}
	return New(cands)
}

func mustToggle(t *testing.T, b *Ballot, tmdbID int, positive bool) {
	t.Helper()
	if err := b.Toggle(tmdbID, positive); err != nil {
		t.Fatalf("Toggle(%d, %v): %v", tmdbID, positive, err)
	}
}

func TestWinnerIsFirstPositiveInCandidateOrder(t *testing.T) {
	t.Parallel()

	// Candidate order 3, 1, 2 deliberately differs from id order. Both 1
	// and 2 are voted up; the winner must be 1, which comes first on the
	// ballot, not the most recently voted and not the smallest id rule
	// applied to a different order.
	b := ballot(3, 1, 2)
	mustToggle(t, b, 3, false)
	mustToggle(t, b, 2, true)
	mustToggle(t, b, 1, true)

	winner, found, err := b.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !found {
		t.Fatal("Submit found no winner")
	}
	if winner.TMDBID != 1 {
		t.Fatalf("winner = %d, want 1", winner.TMDBID)
	}
}

func TestWinnerSkipsNegativeVotes(t *testing.T) {
	t.Parallel()

	b := ballot(1, 2, 3)
	mustToggle(t, b, 1, false)
	mustToggle(t, b, 2, true)
	mustToggle(t, b, 3, true)

	winner, found, err := b.Submit()
	if err != nil || !found {
		t.Fatalf("Submit = %v, %v, %v", winner, found, err)
	}
	if winner.TMDBID != 2 {
		t.Fatalf("winner = %d, want 2", winner.TMDBID)
	}
}

func TestAllNegativeYieldsNoWinner(t *testing.T) {
	t.Parallel()

	b := ballot(1, 2, 3)
	for _, id := range []int{1, 2, 3} {
		mustToggle(t, b, id, false)
	}

	winner, found, err := b.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if found {
		t.Fatalf("Submit found winner %d, want none", winner.TMDBID)
	}
}

func TestSubmitRequiresEveryCandidateVoted(t *testing.T) {
	t.Parallel()

	b := ballot(1, 2, 3)
	mustToggle(t, b, 1, true)
	mustToggle(t, b, 2, true)

	if b.Complete() {
		t.Fatal("Complete with an unvoted candidate")
	}
	if _, _, err := b.Submit(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Submit err = %v, want ErrIncomplete", err)
	}

	mustToggle(t, b, 3, false)
	if !b.Complete() {
		t.Fatal("not Complete with every candidate voted")
	}
}

func TestSameDirectionRepeatClearsVote(t *testing.T) {
	t.Parallel()

	b := ballot(1, 2)
	mustToggle(t, b, 1, true)
	if positive, voted := b.Vote(1); !voted || !positive {
		t.Fatalf("Vote(1) = %v, %v after up vote", positive, voted)
	}

	mustToggle(t, b, 1, true)
	if _, voted := b.Vote(1); voted {
		t.Fatal("repeat up vote did not clear")
	}

	mustToggle(t, b, 1, false)
	mustToggle(t, b, 1, false)
	if _, voted := b.Vote(1); voted {
		t.Fatal("repeat down vote did not clear")
	}
}

func TestOppositeDirectionOverridesDirectly(t *testing.T) {
	t.Parallel()

	b := ballot(1)
	mustToggle(t, b, 1, false)
	mustToggle(t, b, 1, true)

	positive, voted := b.Vote(1)
	if !voted || !positive {
		t.Fatalf("Vote(1) = %v, %v, want direct override to up", positive, voted)
	}

	winner, found, err := b.Submit()
	if err != nil || !found || winner.TMDBID != 1 {
		t.Fatalf("Submit = %v, %v, %v", winner, found, err)
	}
}

func TestToggleUnknownCandidate(t *testing.T) {
	t.Parallel()

	b := ballot(1, 2)
	if err := b.Toggle(99, true); !errors.Is(err, ErrUnknownCandidate) {
		t.Fatalf("Toggle(99) err = %v, want ErrUnknownCandidate", err)
	}
}
