package main

import (
	"fmt"
	"io"
	"runtime/debug"
)

// version returns the module version and the vcs revision mos65 has been
// built from, if known.
func version() (string, string) {
	vers, rev := "local", "no revision information"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return vers, rev
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		vers = v
	}

	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if modified {
		rev += "+dirty"
	}
	return vers, rev
}

func versionMain(w io.Writer) {
	vers, rev := version()
	fmt.Fprintf(w, "mos65 %s (%s)\n", vers, rev)
}
