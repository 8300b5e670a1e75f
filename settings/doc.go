// Package settings defines the versioned settings schemas of the elevators
// plugin and loads settings files through [configtree].
//
// Two schemas exist. [V4] is the layout written by releases before 5.0.0,
// and [Config] is the current layout. [Load] reads the version key of a
// file, loads it with the matching schema, and upgrades legacy files with
// [Upgrade]:
//
//	f, err := settings.Load(data)
//	if err != nil {
//		return err // Not YAML.
//	}
//
//	for _, w := range f.Warnings {
//		slog.Warn(w)
//	}
//
//	out, err := f.Encode()
//
// # Elevator Types
//
// Elevator types and their recipe groups are keyed by upper-case name.
// Names are upper-cased on load, so "fast" and "FAST" are the same type. A
// file that defines an elevators mapping replaces the built-in DEFAULT type;
// a file without one gets it.
//
// # Comments
//
// Fields carry default comments that are written when a file has none.
// Comments in a file are kept, and when a legacy file is upgraded they move
// to the new path of the value they describe. See [UpgradePath].
package settings
