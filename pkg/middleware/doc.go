// Package middleware provides ready-made dispatcher middleware.
//
// Every constructor returns a types.Middleware[R] and can be combined with
// caller-written middleware in any order:
//
//	d, err := dispatcher.New(list, sink,
//	    middleware.Recover[Receipt](),
//	    middleware.Logging[Receipt](logging.GetLogger("dispatch")),
//	    middleware.TraceID[Receipt]("trace_id"),
//	)
//
// Middleware that adds metadata writes into action.Meta before calling next.
// The map is the one the terminal dispatch receives, so additions are visible
// downstream without building a new action.
package middleware
