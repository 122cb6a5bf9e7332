// Package appdata persists per-user CANzero settings in a TOML file under
// <root>/.canzero/canzero.toml. Records load once, track unsaved changes in
// memory, and are written back only when they diverged from disk.
package appdata
