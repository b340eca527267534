// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
)

// Build stamps, set with:
//
//	go build -ldflags "-X github.com/bureau-foundation/surfctl/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Unset stamps fall back to the VCS settings the Go toolchain records
// (see [Stamp]).
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// BuildStamp is the resolved build identity.
type BuildStamp struct {
	Commit string
	Dirty  bool
	Time   string
}

// Stamp resolves the build identity: ldflags values first, then the
// vcs.revision, vcs.modified and vcs.time build settings.
func Stamp() BuildStamp {
	stamp := BuildStamp{Commit: GitCommit, Dirty: GitDirty == "true", Time: BuildTime}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stamp
	}
	return stamp.withSettings(info.Settings)
}

func (stamp BuildStamp) withSettings(settings []debug.BuildSetting) BuildStamp {
	injected := stamp.Commit != "unknown"
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if !injected {
				stamp.Commit = setting.Value[:min(len(setting.Value), 7)]
			}
		case "vcs.modified":
			if !injected {
				stamp.Dirty = setting.Value == "true"
			}
		case "vcs.time":
			if stamp.Time == "unknown" {
				stamp.Time = setting.Value
			}
		}
	}
	return stamp
}

// Info returns "version (commit[-dirty], time)".
func Info() string {
	return Stamp().format()
}

func (stamp BuildStamp) format() string {
	dirty := ""
	if stamp.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, stamp.Commit, dirty, stamp.Time)
}

// Full appends the Go version and platform to Info.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Print writes the --version output for binary to stdout.
func Print(binary string) {
	Fprint(os.Stdout, binary)
}

// Fprint writes the --version output for binary to w.
func Fprint(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n", binary, Full())
}
