// Package registry provides a generic, thread-safe registry keyed by name.
// hermes uses it to look up middleware factories named in configuration.
package registry
