// Package services talks to the remote movie API that owns the catalog, user lists and accounts.
//
// # Raw Client
//
// [APIService] issues raw HTTP requests and returns an [APIResponse] with the status, headers and
// body. When a session token is supplied, the request goes through an [oauth2.Transport] backed by
// a static token source, which attaches `Authorization: Bearer <token>`. The token is never parsed.
//
// # Typed Client
//
// [MovieService] implements [Service] on top of [APIService]:
//   - [Catalog] : GET /api/movies and GET /api/user-movies?userId=
//   - [Authenticator] : POST /api/auth/sign-in with HTTP Basic credentials
//   - [Registrar] : POST /api/auth/sign-up
//   - [UserMovies] : POST /api/user-movies and DELETE /api/user-movies/{id}
//
// List responses are wrapped in a [models.Envelope]; the payload lives under `data`.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure, the request never got an answer
//   - [shared.ErrUnexpectedStatus] : the API answered with a status the call does not accept
//   - [shared.ErrMalformedResponse] : the body could not be decoded
//   - [shared.ErrInvalidCredentials] : sign-in was rejected
//   - [shared.ErrBadImplementation] : a user-list write did not get its expected status
package services
