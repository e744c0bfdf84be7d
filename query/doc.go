// Package query holds the read side of go-polls: question payloads, the
// connection scoped statistics view, and the profile, answer and connection
// lookups. Every handler implements gocommand.Querier.
package query
