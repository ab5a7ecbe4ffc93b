// package models defines the data model for the platfix web client
package models

import "encoding/json"

// Content ratings used to slice the catalog into carousels.
const (
	RatingTrends    = "PG"
	RatingOriginals = "G"
)

// User is the public part of a session.
//
// The zero value serializes as `{}`.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// IsZero reports whether no user is signed in.
func (u User) IsZero() bool {
	return u.ID == ""
}

// Movie is a catalog entry owned by the remote API.
//
// Only the fields below are kept; anything else the API sends is dropped on decode.
type Movie struct {
	ID            string   `json:"_id,omitempty"`
	Title         string   `json:"title,omitempty"`
	Year          int      `json:"year,omitempty"`
	ContentRating string   `json:"contentRating,omitempty"`
	Duration      int      `json:"duration,omitempty"` // seconds
	Cover         string   `json:"cover,omitempty"`
	Source        string   `json:"source,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// movieWire has Movie's fields without its methods.
type movieWire Movie

// movieJSON always carries year and duration, so a zero value survives the round trip.
type movieJSON struct {
	movieWire
	Year     int `json:"year"`
	Duration int `json:"duration"`
}

func toMovieJSON(m Movie) movieJSON {
	return movieJSON{movieWire: movieWire(m), Year: m.Year, Duration: m.Duration}
}

// IsZero reports whether m carries no data at all.
func (m Movie) IsZero() bool {
	return m.ID == "" && m.Title == "" && m.Year == 0 && m.ContentRating == "" &&
		m.Duration == 0 && m.Cover == "" && m.Source == "" && len(m.Tags) == 0 && m.Description == ""
}

// MarshalJSON writes year and duration even when zero. The zero Movie is `{}`.
func (m Movie) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("{}"), nil
	}
	return json.Marshal(toMovieJSON(m))
}

// UserMovie links a user to a movie saved in their list.
type UserMovie struct {
	ID      string `json:"_id"`
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// MyListEntry is a [Movie] with the id of the [UserMovie] that put it on the list.
type MyListEntry struct {
	Movie
	UserMovieID string `json:"userMovieId"`
}

// MarshalJSON flattens the movie next to userMovieId; the embedded [Movie.MarshalJSON] would hide it.
func (e MyListEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		movieJSON
		UserMovieID string `json:"userMovieId"`
	}{movieJSON: toMovieJSON(e.Movie), UserMovieID: e.UserMovieID})
}

// PreloadedState is the application state embedded into every rendered page.
type PreloadedState struct {
	User      User          `json:"user"`
	Playing   Movie         `json:"playing"`
	MyList    []MyListEntry `json:"myList"`
	Trends    []Movie       `json:"trends"`
	Originals []Movie       `json:"originals"`
}

// EmptyState returns the anonymous state.
//
// Lists are non-nil so they serialize as `[]`, not `null`.
func EmptyState() PreloadedState {
	return PreloadedState{
		User:      User{},
		Playing:   Movie{},
		MyList:    []MyListEntry{},
		Trends:    []Movie{},
		Originals: []Movie{},
	}
}

// LoggedIn reports whether the state belongs to a signed-in user.
func (s PreloadedState) LoggedIn() bool {
	return !s.User.IsZero()
}

// FindMovie looks a movie up by id in the list, trends and originals, in that order.
func (s PreloadedState) FindMovie(id string) (Movie, bool) {
	if id == "" {
		return Movie{}, false
	}
	for _, entry := range s.MyList {
		if entry.ID == id {
			return entry.Movie, true
		}
	}
	for _, list := range [][]Movie{s.Trends, s.Originals} {
		for _, movie := range list {
			if movie.ID == id {
				return movie, true
			}
		}
	}
	return Movie{}, false
}

// Envelope is the wrapper the remote API puts around response payloads.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}
