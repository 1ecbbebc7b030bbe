// Package authz holds the derived authorization rules: pure functions of
// the current session, re-evaluated whenever the session changes. They gate
// navigation and actions in the view layer and carry no state of their own.
package authz

import (
	"github.com/w3lalitsaini/anti-movies/model"
	"github.com/w3lalitsaini/anti-movies/session"
)

// CanAccessProtectedPage reports whether protected views (profile,
// favorites, watchlist, admin) may be shown. Callers must check this BEFORE
// issuing any protected upstream call and redirect to the login view when
// false; the client's logout-on-401 path is the fallback for tokens that
// expire mid-session, not the primary gate.
func CanAccessProtectedPage(s *session.Session) bool {
	return s != nil
}

// CanAccessAdminPage reports whether admin-gated actions may proceed.
// A non-admin authenticated user must see an explicit "forbidden", never a
// silent no-op.
func CanAccessAdminPage(s *session.Session) bool {
	return s != nil && s.IsAdmin()
}

// IsFavorited reports membership of a movie in the given favorites
// snapshot. Advisory for UI state (button highlight); the snapshot is
// re-fetched on every page load because the upstream is the source of truth.
func IsFavorited(movieID string, favorites []model.Movie) bool {
	return contains(movieID, favorites)
}

// IsInWatchlist reports membership of a movie in the given watchlist
// snapshot. Same advisory semantics as IsFavorited.
func IsInWatchlist(movieID string, watchlist []model.Movie) bool {
	return contains(movieID, watchlist)
}

func contains(movieID string, snapshot []model.Movie) bool {
	for _, m := range snapshot {
		if m.ID == movieID {
			return true
		}
	}
	return false
}
