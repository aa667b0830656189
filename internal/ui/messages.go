// Package ui provides the Bubble Tea dashboard for the paper feed.
package ui

import "github.com/jpreyes/paperradar/internal/api"

// UsersLoaded is sent when the subject picker's user list arrives.
type UsersLoaded struct {
	Users []api.User
	Err   error
}
