// Package toolset declares the tool catalog exposed to the agent and the
// dispatcher that routes named invocations to generic backend verbs.
//
// The dispatcher is the single failure boundary: every error - remote
// rejection, transport failure, malformed input - is converted into one
// error-prefixed text reply and never escapes to the transport. Every tool
// except odoo_reconnect is gated on an established session and replies with
// a fixed not-connected text without touching the network otherwise.
package toolset
