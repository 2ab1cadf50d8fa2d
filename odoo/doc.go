// Package odoo implements the connection to an Odoo backend over its
// session-authenticated JSON-RPC endpoints.
//
// Client owns the authentication state (session cookie or bearer key) and
// the low-level call primitive; Service exposes the fixed generic verbs
// (capabilities, schema, search, execute) that form the only vocabulary for
// touching the backend - there is no per-model typed client code.
//
// All access control is delegated to the backend: the package never decides
// permissions on its own, so the bridge cannot drift from the backend's
// rules. Rejections surface as *RemoteError, network failures as
// *TransportError, and verbs invoked before authentication fail fast with
// ErrNotConnected.
package odoo
