// Package http contains the HTTP handlers for the PCN portal API. Handlers
// depend on service interfaces rather than concrete types so they can be
// tested with fakes, and every error path renders an RFC 7807 problem
// document through the shared error handler.
package http
