// Package server serves the player's web app.
//
// # Router
//
// [BasicRouter] wraps [http.ServeMux] with method filtering and a [Middleware] stack.
// Middleware added first runs outermost, and only wraps handlers registered after it.
//
// # Sessions
//
// [Sessions] resolves the session cookie into a user stored on the request context
// ([UserFromContext], [SessionFromContext]). Unknown or expired cookies are cleared and the
// request continues anonymously.
//
// # Handlers
//
//   - [HomeHandler] runs the search for the "q" parameter and renders the result page.
//   - [OAuthHandler] implements [Handler] for /login and /callback. The state parameter is
//     checked against a cookie set at /login before the code is exchanged.
//   - [LogoutHandler] removes the SoundCloud identity, ends the session and redirects to /.
//   - [HealthHandler] pings the database.
//
// [NewApp] wires them together.
package server
