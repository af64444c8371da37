// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/sldview/internal/interaction"
)

var keyNames = map[string]ebiten.Key{
	"1":            ebiten.KeyDigit1,
	"2":            ebiten.KeyDigit2,
	"3":            ebiten.KeyDigit3,
	"4":            ebiten.KeyDigit4,
	"5":            ebiten.KeyDigit5,
	"6":            ebiten.KeyDigit6,
	"A":            ebiten.KeyA,
	"B":            ebiten.KeyB,
	"E":            ebiten.KeyE,
	"G":            ebiten.KeyG,
	"L":            ebiten.KeyL,
	"M":            ebiten.KeyM,
	"O":            ebiten.KeyO,
	"R":            ebiten.KeyR,
	"S":            ebiten.KeyS,
	"T":            ebiten.KeyT,
	"U":            ebiten.KeyU,
	"BracketLeft":  ebiten.KeyBracketLeft,
	"BracketRight": ebiten.KeyBracketRight,
	"Minus":        ebiten.KeyMinus,
	"Equal":        ebiten.KeyEqual,
	"Comma":        ebiten.KeyComma,
	"Period":       ebiten.KeyPeriod,
	"Escape":       ebiten.KeyEscape,
}

// binding is a shortcut resolved to an ebiten key.
type binding struct {
	key ebiten.Key
	interaction.Shortcut
}

// bindings resolves every shortcut.
func bindings(shortcuts []interaction.Shortcut) ([]binding, error) {
	out := make([]binding, 0, len(shortcuts))
	for _, s := range shortcuts {
		k, ok := keyNames[s.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, s.Key)
		}
		out = append(out, binding{key: k, Shortcut: s})
	}
	return out, nil
}

// helpLines formats the shortcut list for the help overlay.
func helpLines(bs []binding) []string {
	lines := make([]string, 0, len(bs)+2)
	lines = append(lines, "Keyboard shortcuts", "")
	for _, b := range bs {
		lines = append(lines, fmt.Sprintf("%-12s %s", b.Key, b.Help))
	}
	return append(lines, fmt.Sprintf("%-12s %s", "H", "show or hide this help"))
}
