// Package app wires application dependencies for the CLI.
//
// LoadConfig reads USTAT_* settings from the environment (and an optional
// .env file). NewWire turns a Config into the infrastructure graph: the
// key/value backend selected by Config.Store, the token store, one session
// context, one reauthorizer shared by both API clients, and the clients
// themselves. New layers the domain services on top of a Wire to form the
// App that commands use.
package app
