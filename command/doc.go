// Package command exposes go-command compatible command handlers for the
// polls write paths (questions, answers, profiles, connections). Commands are
// wired by the service layer and can be invoked by any transport.
package command
