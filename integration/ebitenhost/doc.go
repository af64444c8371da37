// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost runs the viewer in a desktop window.
//
// The host owns no viewer state. Each tick it forwards pointer, wheel,
// keyboard and file-drop input to the interaction layer, applies finished
// server requests, and redraws when the application asks for it. The data
// flow is:
//
//	app.App (layers) -> surface.Stack composite (CPU) -> ebiten.Image -> Window
//
// # Usage
//
//	alerts := &ebitenhost.Alerts{}
//	a, err := app.New(svc, app.Options{Notifier: alerts})
//	if err != nil {
//		return err
//	}
//	defer a.Close()
//
//	game, err := ebitenhost.NewGame(a, alerts)
//	if err != nil {
//		return err
//	}
//	return ebitenhost.Run(game, "sldview", 1280, 800)
//
// Alerts are shown as a modal overlay and dismissed by a click or any key.
// Press H for the list of keyboard shortcuts.
package ebitenhost
