// Package wrapper provides invocation middlewares for the invoker.
//
// Each constructor returns a dispatcher.WrapFunc that decorates a resolved callable,
// so cross-cutting concerns such as logging, panic recovery, tracing and metadata
// injection are applied without changing the registered callables. Wrappers only
// run for codes that were resolved; unresolved codes never reach them.
package wrapper
