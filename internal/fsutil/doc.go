// Package fsutil holds small filesystem helpers shared by the persistence
// code: parent-first directory creation and path canonicalization.
package fsutil
