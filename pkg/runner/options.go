// Package runner checks many GEDCOM files concurrently.
package runner

import "github.com/yaklabco/gedkit/pkg/gedcom"

// Options controls a multi-file check.
type Options struct {
	// Paths are files or directories to check. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and exclude patterns. Defaults to
	// the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as GEDCOM.
	// Defaults to DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns use
	// gobwas/glob syntax with "/" as separator, so "*" stays within one
	// path element and "**" crosses them. They are matched against the
	// path relative to WorkingDir and against the base name.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of files read at once. 0 means one per CPU.
	Jobs int

	// Reader is passed to gedcom.Open for every file.
	Reader gedcom.Options
}

// DefaultExtensions returns the extensions checked when none are given.
func DefaultExtensions() []string {
	return []string{".ged", ".gedcom"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
