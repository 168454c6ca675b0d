/*
Package observability turns dashboard service events into Prometheus metrics
and structured log records.

Both are delivered as domain.Hooks so they can be merged and passed to the
service alongside any caller-provided hooks.
*/
package observability
