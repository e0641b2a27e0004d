// Package auth drives sign-in, registration, password recovery and sign-out.
//
// Forms are checked locally before anything is sent. A successful login is
// handed to the session manager, which persists the tokens and the user;
// logout always clears local state, even when the server cannot be reached.
package auth
