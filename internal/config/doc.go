// Package config persists text field state as a labelled value in a
// structured document.
//
// A field lives under a dotted label path inside a TOML, YAML or JSON
// document, chosen by file extension:
//
//	[fields.username]
//	text = "alice"
//	max_length = 32
//	filter = "filters/lower.lua"
//	graphemes = true
//
// Load and Save read and update a single field without disturbing the rest
// of the document. Decode and Encode do the same over byte slices.
//
// ApplyEnv layers TEXTBOX_* environment variables over a loaded field, and
// the watcher sub-package reloads a field when its file changes.
package config
