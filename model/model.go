// Package model holds the wire types exchanged with the upstream movies API.
// All of them are owned by the upstream; the gateway never mutates a Movie
// except by full-document submission through the admin endpoints.
package model

import "time"

// CastMember is one entry in a movie's cast list.
type CastMember struct {
	ActorName     string `json:"actorName"`
	CharacterName string `json:"characterName,omitempty"`
	Photo         string `json:"photo,omitempty"`
}

// FAQ is a question/answer pair shown on the movie detail page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AffiliateLinks are per-provider outbound links for a movie.
type AffiliateLinks struct {
	Netflix string `json:"netflix,omitempty"`
	Amazon  string `json:"amazon,omitempty"`
	Hotstar string `json:"hotstar,omitempty"`
	Prime   string `json:"prime,omitempty"`
}

// Movie is a full catalog document.
type Movie struct {
	ID             string         `json:"_id,omitempty"`
	Slug           string         `json:"slug,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Poster         string         `json:"poster,omitempty"`
	Trailer        string         `json:"trailer,omitempty"`
	Genre          []string       `json:"genre,omitempty"`
	Director       string         `json:"director,omitempty"`
	Language       string         `json:"language,omitempty"`
	Runtime        string         `json:"runtime,omitempty"`
	Quality        string         `json:"quality,omitempty"`
	ReleaseDate    string         `json:"releaseDate,omitempty"`
	Rating         float64        `json:"rating,omitempty"`
	IsTrending     bool           `json:"isTrending,omitempty"`
	AffiliateLinks AffiliateLinks `json:"affiliateLinks,omitempty"`
	Cast           []CastMember   `json:"cast,omitempty"`
	Screenshots    []string       `json:"screenshots,omitempty"`
	FAQs           []FAQ          `json:"faqs,omitempty"`
}

// MoviePage is one page of catalog results.
type MoviePage struct {
	Movies     []Movie `json:"movies"`
	TotalPages int     `json:"totalPages"`
}

// Review is a user's star rating and comment for one movie. The upstream
// enforces one review per (user, movie) pair.
type Review struct {
	ID        string    `json:"_id,omitempty"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	MovieID   string    `json:"movieId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// User is an account as reported by the upstream. Favorites and Watchlist
// are snapshots embedded in the profile response; the upstream remains the
// source of truth for membership.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	Favorites []Movie   `json:"favorites,omitempty"`
	Watchlist []Movie   `json:"watchlist,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// GenreCount is one bar of the admin dashboard's genre distribution.
type GenreCount struct {
	Genre string `json:"_id"`
	Count int    `json:"count"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalMovies       int          `json:"totalMovies"`
	TotalUsers        int          `json:"totalUsers"`
	TotalReviews      int          `json:"totalReviews,omitempty"`
	GenreDistribution []GenreCount `json:"genreDistribution,omitempty"`
}
