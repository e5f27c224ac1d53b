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
	"github.com/filmmatch/filmmatch-go/internal/prefs"
	"github.com/filmmatch/filmmatch-go/internal/validation"
)

// PreferencesUpdater pushes account-level preference changes to the
// server. Nil disables the push for anonymous users.
type PreferencesUpdater interface {
	UpdatePreferences(ctx context.Context, prefs *api.PreferencesUpdate) error
}

// OnboardedMarker persists the one-shot onboarding-complete flag.
// *credstore.Store satisfies it.
type OnboardedMarker interface {
	SetOnboarded() error
}

// Onboarding runs the first-launch wizard: vibes, genres, dealbreakers,
// streaming services. Completing it seeds a preference accumulator for
// the first recommendation and sets the onboarded flag so the wizard is
// never shown again.
type Onboarding struct {
	mu      sync.Mutex
	updater PreferencesUpdater
	marker  OnboardedMarker

	step        Step
	moods       []string
	genres      []string
	constraints api.Constraints
	services    []string
}

type vibesGate struct {
	Moods []string `validate:"required,min=1,max=3"`
}

type onboardingGenresGate struct {
	Genres []string `validate:"required,min=3"`
}

// NewOnboarding builds the wizard at the vibes step. updater may be nil
// for anonymous users.
func NewOnboarding(updater PreferencesUpdater, marker OnboardedMarker) *Onboarding {
	return &Onboarding{
		updater: updater,
		marker:  marker,
		step:    StepVibes,
	}
}

// Step reports the wizard's current step.
func (o *Onboarding) Step() Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// SetMoods records the selected vibes.
func (o *Onboarding) SetMoods(moods []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moods = append([]string(nil), moods...)
}

// SetGenres records the selected genres.
func (o *Onboarding) SetGenres(genres []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.genres = append([]string(nil), genres...)
}

// SetConstraints records the dealbreaker toggles.
func (o *Onboarding) SetConstraints(c api.Constraints) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.constraints = c
}

// SetServices records the user's streaming services.
func (o *Onboarding) SetServices(services []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.services = append([]string(nil), services...)
}

// Next advances one step. The vibes step requires one to three moods and
// the genres step at least three genres; dealbreakers and services are
// optional.
func (o *Onboarding) Next() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.step {
	case StepVibes:
		if err := validation.ValidateStruct(vibesGate{Moods: o.moods}); err != nil {
			return err
		}
		o.step = StepGenres
	case StepGenres:
		if err := validation.ValidateStruct(onboardingGenresGate{Genres: o.genres}); err != nil {
			return err
		}
		o.step = StepDealbreakers
	case StepDealbreakers:
		o.step = StepServices
	default:
		return fmt.Errorf("%w: %s", ErrWrongStep, o.step)
	}
	return nil
}

// Complete finishes the wizard. It returns an accumulator seeded with the
// collected preferences, pushes them to the account when signed in, and
// persists the onboarded flag. The server push is best-effort; a flag
// write failure is returned since without it the wizard would repeat.
func (o *Onboarding) Complete(ctx context.Context) (*prefs.Accumulator, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step != StepServices {
		return nil, fmt.Errorf("%w: %s", ErrWrongStep, o.step)
	}

	acc := prefs.New()
	acc.SetMood(o.moods)
	acc.SetGenres(o.genres)
	c := o.constraints
	c.StreamingServices = append([]string(nil), o.services...)
	acc.SetConstraints(&c)

	if o.updater != nil {
		err := o.updater.UpdatePreferences(ctx, &api.PreferencesUpdate{
			PreferredGenres:   o.genres,
			StreamingServices: o.services,
		})
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("onboarding preference push failed")
		}
	}

	if err := o.marker.SetOnboarded(); err != nil {
		return nil, fmt.Errorf("persist onboarded flag: %w", err)
	}
	o.step = StepDone
	return acc, nil
}
