// FilmMatch - AI Movie Night Decision Engine
// Copyright 2026 FilmMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmmatch/filmmatch-go

package api

// Mode selects between a single-viewer and a multi-viewer recommendation.
type Mode string

const (
	// ModeSolo requests a recommendation for a single viewer.
	ModeSolo Mode = "solo"
	// ModeGroup requests a recommendation balancing multiple viewers.
	ModeGroup Mode = "group"
)

// YearRange bounds the release years a viewer will accept.
type YearRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Constraints are hard viewing constraints for one viewer.
type Constraints struct {
	MaxRuntimeMin     *int     `json:"max_runtime_min,omitempty"`
	SubtitlesOK       *bool    `json:"subtitles_ok,omitempty"`
	StreamingServices []string `json:"streaming_services,omitempty"`
	FamilyFriendly    *bool    `json:"family_friendly,omitempty"`
}

// UserProfile is one viewer's stated taste for a recommendation request.
type UserProfile struct {
	Name              string       `json:"name"`
	LikesGenres       []string     `json:"likes_genres"`
	DislikesGenres    []string     `json:"dislikes_genres"`
	Dealbreakers      []string     `json:"dealbreakers"`
	FavoriteActors    []string     `json:"favorite_actors"`
	FavoriteDirectors []string     `json:"favorite_directors"`
	YearRange         *YearRange   `json:"year_range,omitempty"`
	Mood              []string     `json:"mood"`
	Constraints       *Constraints `json:"constraints,omitempty"`
}

// Context carries submission-wide modifiers independent of any one viewer.
type Context struct {
	Occasion         string `json:"occasion,omitempty"`
	Energy           string `json:"energy,omitempty"`
	WantSomethingNew bool   `json:"want_something_new"`
	Familiarity      string `json:"familiarity,omitempty"`
}

// RecommendationRequest is the body for POST /recommendations.
type RecommendationRequest struct {
	Mode    Mode          `json:"mode"`
	Users   []UserProfile `json:"users"`
	Context *Context      `json:"context,omitempty"`
	Message string        `json:"message,omitempty"`
}

// NarrowRequest is the body for POST /recommendations/{session_id}/refine.
// Keep and reject lists carry the full partition accumulated so far, not
// just the latest round's deltas.
type NarrowRequest struct {
	Feedback      string `json:"feedback"`
	KeepTMDBIDs   []int  `json:"keep_tmdb_ids,omitempty"`
	RejectTMDBIDs []int  `json:"reject_tmdb_ids,omitempty"`
}

// ReactionRequest is the body for POST /recommendations/{session_id}/react.
type ReactionRequest struct {
	TMDBID   int    `json:"tmdb_id"`
	Positive bool   `json:"positive"`
	Reason   string `json:"reason,omitempty"`
}

// SelectionRequest is the body for POST /recommendations/{session_id}/select.
type SelectionRequest struct {
	TMDBID int `json:"tmdb_id"`
}

// MovieSummary describes one candidate film. It is immutable once received.
//
// MatchScore (0-10) and Rationale are present only on post-recommendation
// summaries; MatchScore is nil when the movie has not been scored and
// Rationale is the empty string when absent. Year is nil when the backend
// has no release date for the title.
type MovieSummary struct {
	TMDBID      int      `json:"tmdb_id"`
	Title       string   `json:"title"`
	Year        *string  `json:"year"`
	Genres      []string `json:"genres"`
	VoteAverage float64  `json:"vote_average"`
	Runtime     *int     `json:"runtime"`
	PosterURL   *string  `json:"poster_url"`
	BackdropURL *string  `json:"backdrop_url"`
	Overview    string   `json:"overview"`
	Directors   []string `json:"directors"`
	Cast        []string `json:"cast"`
	MatchScore  *float64 `json:"match_score"`
	Rationale   string   `json:"rationale"`
}

// RecommendationResponse is the server-correlated result of a submitted
// preference set. SessionID correlates all subsequent refine/react/select
// calls to the originating request. A refine response replaces the previous
// one wholesale; fields absent from the new response do not survive.
type RecommendationResponse struct {
	SessionID       string         `json:"session_id"`
	BestPick        MovieSummary   `json:"best_pick"`
	AdditionalPicks []MovieSummary `json:"additional_picks"`
	NarrowQuestion  *string        `json:"narrow_question"`
	OverlapSummary  *string        `json:"overlap_summary"`
	ModelUsed       string         `json:"model_used"`
}

// DecisionReceipt summarizes how a session arrived at its final pick.
type DecisionReceipt struct {
	SessionID        string   `json:"session_id"`
	Mode             string   `json:"mode"`
	Members          []string `json:"members"`
	MoviesConsidered int      `json:"movies_considered"`
	MoviesLiked      int      `json:"movies_liked"`
	MoviesPassed     int      `json:"movies_passed"`
	FinalPickTMDBID  *int     `json:"final_pick_tmdb_id"`
	ComplexityTier   string   `json:"complexity_tier"`
	TurnCount        int      `json:"turn_count"`
	ShareableText    string   `json:"shareable_text"`
}

// TrendingMovie is a lightweight movie entry from GET /movies/trending.
type TrendingMovie struct {
	TMDBID      int      `json:"tmdb_id"`
	Title       string   `json:"title"`
	Year        *string  `json:"year"`
	PosterURL   *string  `json:"poster_url"`
	BackdropURL *string  `json:"backdrop_url"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`
	Overview    string   `json:"overview"`
}

// TokenResponse carries the access and refresh tokens issued on login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserResponse describes the authenticated account.
type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	CreatedAt   string  `json:"created_at"`
}

// PreferencesUpdate is the body for PATCH /users/me/preferences.
// Only non-nil fields are updated.
type PreferencesUpdate struct {
	PreferredGenres     []string `json:"preferred_genres,omitempty"`
	DislikedGenres      []string `json:"disliked_genres,omitempty"`
	Dealbreakers        []string `json:"dealbreakers,omitempty"`
	PreferredDecades    []int    `json:"preferred_decades,omitempty"`
	StreamingServices   []string `json:"streaming_services,omitempty"`
	ContentRatingMax    *string  `json:"content_rating_max,omitempty"`
	LanguagePreferences []string `json:"language_preferences,omitempty"`
}

// WatchHistoryItem is one entry from GET /users/me/history.
type WatchHistoryItem struct {
	TMDBID    int      `json:"tmdb_id"`
	Title     *string  `json:"title"`
	PosterURL *string  `json:"poster_url"`
	Status    string   `json:"status"`
	Rating    *float64 `json:"rating"`
	CreatedAt string   `json:"created_at"`
}

// GenreAffinity is one genre's learned weight in a taste profile.
type GenreAffinity struct {
	Genre        string  `json:"genre"`
	Score        float64 `json:"score"`
	Interactions int     `json:"interactions"`
}

// TasteProfile is the server-computed summary of an account's taste.
type TasteProfile struct {
	UserID            string          `json:"user_id"`
	GenreAffinities   []GenreAffinity `json:"genre_affinities"`
	PreferredDecades  []int           `json:"preferred_decades"`
	TopDirectors      []string        `json:"top_directors"`
	TopActors         []string        `json:"top_actors"`
	AvgRating         *float64        `json:"avg_rating"`
	TotalInteractions int             `json:"total_interactions"`
}

// FeedbackRequest is the body for POST /users/me/feedback.
type FeedbackRequest struct {
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	Comment   string  `json:"comment,omitempty"`
	SessionID string  `json:"session_id,omitempty"`
}

// GroupMemberPreferences is the body for POST /groups/{id}/preferences.
type GroupMemberPreferences struct {
	LikesGenres    []string               `json:"likes_genres"`
	DislikesGenres []string               `json:"dislikes_genres"`
	Mood           []string               `json:"mood"`
	Constraints    map[string]interface{} `json:"constraints,omitempty"`
}

// GroupResponse describes a group watch session.
type GroupResponse struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	JoinCode    string  `json:"join_code"`
	MemberCount int     `json:"member_count"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}
