// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

import "runtime/debug"

// modulePath is used to find our own version among the build dependencies.
const modulePath = "github.com/buypy/backoffice"

// Set at link time, e.g.
// -ldflags "-X github.com/buypy/backoffice/buildvars.Version=1.2.3".
var (
	Version   string
	GitCommit string
	BuildDate string
)

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// Resolve computes the best-available version, commit and build date. Link
// time values win; runtime build info fills the gaps. A nil info reads the
// build info of the running binary.
func Resolve(info *debug.BuildInfo) (version, commit, date string) {
	version = VersionOrDefault("dev")
	commit = GitCommit
	date = BuildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info == nil {
		return version, commit, date
	}

	if version == "dev" {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		for _, dep := range info.Deps {
			if version == "dev" && dep.Path == modulePath && dep.Version != "" {
				version = dep.Version
			}
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "" {
				commit = s.Value
			}
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return version, commit, date
}

// Describe renders "version (commit) built: date", omitting missing parts.
func Describe(info *debug.BuildInfo) string {
	v, c, d := Resolve(info)
	out := v
	if c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}
