// Package dashboard recomputes every view of the vapor pressure explorer from a
// set of interactive parameters: pressure curves, boiling temperatures, the
// boiling separation of a pair and its sweep over pressure.
//
// A Service is stateless apart from its optional result cache and is safe for
// concurrent use.
package dashboard
