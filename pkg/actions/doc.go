// Package actions holds the whitelist of action types a dispatcher accepts.
//
// A Set is built once from the caller's actions list and never changes
// afterwards, so its Validate method can be handed to middleware and called
// from any goroutine without locking.
package actions
