// Package commands defines the ustat CLI and wires dependencies for subcommands.
//
// Commands
//
//   - status           Show the startup route and the signed-in user
//   - onboarding done  Mark the introduction as seen
//   - login, register, logout, forgot-password, reset-password
//   - profile          Show or edit the profile, change the password
//   - blog             List and read blog posts
//   - packages         List subscription packages
//   - subscription     Show, buy or cancel a plan
//   - payment          Manage stored cards and billing history
//   - calc             Legal calculators (infaz, vekalet, harc, maas, iscilik, trafik)
//
// # Implementation
//
// The root command loads configuration from the environment and an optional
// .env file, applies flag overrides, and builds the dependency graph (token
// store, session, shared reauthorizer, API clients, services) before any
// subcommand runs. Errors are printed the way the session layer describes
// them to users; --log-level debug shows the underlying cause.
package commands
