// Package types defines the core types shared by the dispatcher, its
// middleware and the terminal dispatch collaborators: the Action record,
// its Meta mapping, and the function shapes that make up a middleware chain.
package types
