// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

// Package main is the FilmMatch terminal client.
//
// FilmMatch helps a viewer, or a group of up to six, decide what to watch
// tonight. It collects preferences through a short wizard, asks the
// FilmMatch gateway for AI-scored recommendations, and then narrows the
// candidates down to one movie: solo mode deals the picks as a swipe deck,
// group mode runs a thumbs up/down vote.
//
// # Usage
//
//	filmmatch                 run the solo wizard (onboarding on first launch)
//	filmmatch group           run a group movie night
//	filmmatch trending        show currently trending movies
//	filmmatch login <email>   request a magic sign-in link
//	filmmatch verify <token>  exchange a magic-link token for credentials
//	filmmatch logout          clear stored credentials
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (FM_API_BASE_URL, FM_LOG_LEVEL, ...)
//   - Config file (filmmatch.yaml, or FM_CONFIG_PATH)
//   - Built-in defaults
//
// Credentials live in a local BadgerDB store under ~/.filmmatch; signing
// in is optional, anonymous sessions work for everything except the
// account surfaces (watchlist, history, taste profile).
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/filmmatch/filmmatch-go/internal/api"
	"github.com/filmmatch/filmmatch-go/internal/config"
	"github.com/filmmatch/filmmatch-go/internal/credstore"
	"github.com/filmmatch/filmmatch-go/internal/flow"
	"github.com/filmmatch/filmmatch-go/internal/logging"
	"github.com/filmmatch/filmmatch-go/internal/narrow"
	"github.com/filmmatch/filmmatch-go/internal/prefs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	store, err := credstore.Open(cfg.CredStore.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.CredStore.Path).Msg("Failed to open credential store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing credential store")
		}
	}()

	client := api.New(&cfg.API, store)
	var backend flow.GroupBackend = client
	if cfg.API.CircuitBreaker {
		backend = api.NewBreakerClient(client)
	}

	ctx := logging.ContextWithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	app := &app{
		client:  client,
		backend: backend,
		store:   store,
		in:      bufio.NewScanner(os.Stdin),
	}

	cmd := "solo"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "solo":
		err = app.runSolo(ctx)
	case "group":
		err = app.runGroup(ctx)
	case "trending":
		err = app.runTrending(ctx)
	case "login":
		err = app.runLogin(ctx, os.Args[2:])
	case "verify":
		err = app.runVerify(ctx, os.Args[2:])
	case "logout":
		err = app.runLogout(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		logging.Fatal().Err(err).Str("command", cmd).Msg("Command failed")
	}
}

type app struct {
	client  *api.Client
	backend flow.GroupBackend
	store   *credstore.Store
	in      *bufio.Scanner
}

func (a *app) runSolo(ctx context.Context) error {
	onboarded, err := a.store.Onboarded()
	if err != nil {
		return fmt.Errorf("read onboarded flag: %w", err)
	}

	f := flow.NewSolo(a.backend)
	if !onboarded {
		acc, err := a.runOnboarding(ctx)
		if err != nil {
			return err
		}
		seed := acc.Profile()
		f.Preferences().SetMood(seed.Mood)
		f.Preferences().SetGenres(seed.LikesGenres)
		f.Preferences().SetConstraints(seed.Constraints)
	}

	for f.Step() == flow.StepGenres {
		if len(f.Preferences().Profile().LikesGenres) == 0 {
			f.Preferences().SetGenres(a.promptList("Which genres are you into? (comma-separated)"))
		}
		if err := f.Next(); err != nil {
			fmt.Println("Pick at least one genre.")
			f.Preferences().SetGenres(nil)
		}
	}
	for f.Step() == flow.StepMood {
		if len(f.Preferences().Profile().Mood) == 0 {
			f.Preferences().SetMood(a.promptList("What's the vibe tonight? (comma-separated)"))
		}
		if err := f.Next(); err != nil {
			fmt.Println("Pick at least one vibe.")
			f.Preferences().SetMood(nil)
		}
	}
	if text := a.prompt("Anything else? (actors, eras, 'something like...', or blank)"); text != "" {
		f.Preferences().SetFreeText(text)
	}

	fmt.Println("Finding your movie...")
	session, err := f.Submit(ctx)
	if err != nil {
		fmt.Println("That didn't work, let's try again.")
		return err
	}
	printPick("Best pick", session.BestPick)

	if len(session.AdditionalPicks) > 0 && a.confirm("Swipe through all the picks to narrow it down?") {
		engine, err := f.StartNarrowing()
		if err != nil {
			return err
		}
		a.runDeck(engine)
		final, err := f.FinishNarrowing(ctx)
		if err != nil {
			return err
		}
		printPick("Your perfect pick", final)
		if err := f.MarkSelected(ctx, final.TMDBID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Selection report failed")
		}
		if a.confirm("Save it to your watchlist?") {
			if err := f.AddToWatchlist(ctx, final.TMDBID); err != nil {
				fmt.Println("Couldn't save to your watchlist right now.")
			}
		}
	}
	return nil
}

func (a *app) runDeck(engine *narrow.Engine) {
	for {
		movie, ok := engine.Current()
		if !ok {
			return
		}
		fmt.Printf("\n%s (%s)  %.1f/10\n", movie.Title, yearOf(movie), movie.VoteAverage)
		if movie.Overview != "" {
			fmt.Println(movie.Overview)
		}
		decision := narrow.Reject
		if a.confirm("Keep it?") {
			decision = narrow.Keep
		}
		if err := engine.Decide(movie.TMDBID, decision); err != nil {
			return
		}
	}
}

func (a *app) runGroup(ctx context.Context) error {
	f := flow.NewGroup(a.backend)
	name := a.prompt("Name your movie night (blank for none)")
	if err := f.Begin(ctx, name); err != nil {
		return err
	}
	fmt.Printf("Share this code with your group: %s\n", f.JoinCode())
	if err := f.Proceed(); err != nil {
		return err
	}

	for {
		member, err := f.AddMember()
		if err != nil {
			fmt.Println("The group is full.")
			break
		}
		member.SetName(a.prompt("Member name"))
		member.SetGenres(a.promptList("Their genres (comma-separated)"))
		member.SetMood(a.promptList("Their vibe (comma-separated)"))
		if len(f.Members()) >= 2 && !a.confirm("Add another member?") {
			break
		}
	}

	fmt.Println("Finding a movie everyone will like...")
	session, err := f.Submit(ctx)
	if err != nil {
		return err
	}
	printPick("Best pick", session.BestPick)
	if session.OverlapSummary != nil {
		fmt.Println(*session.OverlapSummary)
	}

	ballot, err := f.StartVoting()
	if err != nil {
		return err
	}
	for _, candidate := range ballot.Candidates() {
		fmt.Printf("\n%s (%s)  %.1f/10\n", candidate.Title, yearOf(candidate), candidate.VoteAverage)
		if err := ballot.Toggle(candidate.TMDBID, a.confirm("Thumbs up?")); err != nil {
			return err
		}
	}
	winner, err := f.FinishVoting(ctx)
	if err != nil {
		return err
	}
	printPick("Tonight's movie", winner)
	return nil
}

func (a *app) runOnboarding(ctx context.Context) (*prefs.Accumulator, error) {
	var updater flow.PreferencesUpdater
	if token, _ := a.store.AccessToken(); token != "" {
		updater = a.client
	}
	o := flow.NewOnboarding(updater, a.store)

	for o.Step() == flow.StepVibes {
		o.SetMoods(a.promptList("Pick 1-3 vibes (thrilling, cozy, mind-bending, feel-good, dark, funny, romantic, epic)"))
		if err := o.Next(); err != nil {
			fmt.Println("Pick one to three vibes.")
		}
	}
	for o.Step() == flow.StepGenres {
		o.SetGenres(a.promptList("Pick at least 3 genres"))
		if err := o.Next(); err != nil {
			fmt.Println("Pick at least three genres.")
		}
	}
	subtitlesOK := a.confirm("Subtitles OK?")
	o.SetConstraints(api.Constraints{SubtitlesOK: &subtitlesOK})
	if err := o.Next(); err != nil {
		return nil, err
	}
	o.SetServices(a.promptList("Which streaming services do you have?"))
	return o.Complete(ctx)
}

func (a *app) runTrending(ctx context.Context) error {
	movies, err := a.client.Trending(ctx)
	if err != nil {
		return err
	}
	for _, m := range movies {
		year := ""
		if m.Year != nil {
			year = *m.Year
		}
		fmt.Printf("%-40s %-6s %.1f/10  %s\n", m.Title, year, m.VoteAverage, strings.Join(m.Genres, ", "))
	}
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: filmmatch login <email>")
	}
	if err := a.client.RequestMagicLink(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Check your email for a sign-in link, then run: filmmatch verify <token>")
	return nil
}

func (a *app) runVerify(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: filmmatch verify <token>")
	}
	tokens, err := a.client.VerifyMagicLink(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.store.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	fmt.Println("Signed in.")
	return nil
}

func (a *app) runLogout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Server logout failed, clearing local credentials anyway")
	}
	if err := a.store.ClearTokens(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *app) prompt(question string) string {
	fmt.Printf("%s\n> ", question)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) promptList(question string) []string {
	raw := strings.Split(a.prompt(question), ",")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (a *app) confirm(question string) bool {
	answer := strings.ToLower(a.prompt(question + " [y/n]"))
	return answer == "y" || answer == "yes"
}

func printPick(label string, m api.MovieSummary) {
	fmt.Printf("\n%s: %s (%s)  %.1f/10\n", label, m.Title, yearOf(m), m.VoteAverage)
	if m.MatchScore != nil {
		fmt.Printf("Match score: %.1f/10\n", *m.MatchScore)
	}
	if m.Rationale != "" {
		fmt.Println(m.Rationale)
	}
}

func yearOf(m api.MovieSummary) string {
	if m.Year == nil {
		return "?"
	}
	return *m.Year
}
