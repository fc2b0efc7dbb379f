// Package key provides the key event model consumed by the text box input
// bindings.
//
// This package defines:
//
//   - Key: Identifies a keyboard key (editing and navigation keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with modifiers
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+A", "Shift+Left", "Ctrl+Shift+End"
//   - Vim-style: "<C-a>", "<S-Left>", "<CR>", "<BS>"
//
// Specifications are used by scripted input and tests; terminal backends
// build Events directly.
package key
