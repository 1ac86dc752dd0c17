// Package client contains client-side building blocks for edupilot.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the edupilot backend: Signup/Login/Logout/Session, Ping, task and
//     study log CRUD, and Export.
//  2. A concrete HTTP implementation (see HTTPClient) that keeps the session
//     token issued at login and maps response statuses to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are returned as *APIError values carrying the server's message.
// They match with errors.Is: ErrUnavailable, ErrUnauthorized and the shared
// common.ErrorValidation, common.ErrorNotFound and common.ErrorConflict.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
