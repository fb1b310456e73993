// Package key defines key events and the key-spec notation used by keymaps.
//
// Specs can be written as a single character ("a", "%"), a key name
// ("Enter", "Esc"), modifier style ("Ctrl+E") or Vim style ("<C-e>", "<CR>").
// Every spec has a canonical form, Event.VimString, which keymaps use as
// their lookup key.
package key
