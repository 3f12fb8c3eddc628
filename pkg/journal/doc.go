// Package journal is an append-only action log that serves as a terminal
// dispatch function. Each dispatched action becomes one entry in a JSON
// lines or YAML stream on an afero filesystem.
package journal
