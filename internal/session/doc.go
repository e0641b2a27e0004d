// Package session holds the client's authentication state.
//
// A Context is created once per process and handed to whatever front end
// needs it. It mirrors the TokenStore in memory (IsAuthenticated, User,
// Loading, Error), writes through to the store on login, profile updates
// and logout, and notifies subscribers after every transition.
//
// Context also implements domain.AuthFailureHook: when the api package
// gives up on refreshing the session, the Context signs the user out.
package session
