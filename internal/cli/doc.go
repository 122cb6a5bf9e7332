// Package cli implements the canzero-appdata command tree: inspecting and
// changing the persisted CANzero config path from a shell.
package cli
