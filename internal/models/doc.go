// Package models defines the entities exchanged with the remote movie API and the preloaded state embedded in rendered pages.
//
// The package contains two categories of types:
//
// 1. Remote entities: owned by the movie API and only read or forwarded here
//   - [Movie] : catalog entry, identified by `_id` on the wire
//   - [UserMovie] : association "movie saved to a user's list"
//   - [User] : public profile returned by sign-in
//
// 2. Derived entities: built per request and never stored
//   - [MyListEntry] : a [Movie] joined with the id of the [UserMovie] that saved it
//   - [PreloadedState] : the JSON snapshot seeding the browser client
//
// [Envelope] describes the `{data, message}` wrapper the remote API puts around payloads.
package models
