// Package common contains shared constants and sentinel errors used across
// edupilot components.
package common

import "time"

// SessionCookieName is the name of the browser-held cookie that carries the
// session token.
const SessionCookieName = "session"

// DefaultSessionTTL is the lifetime of a freshly issued session.
const DefaultSessionTTL = 7 * 24 * time.Hour
