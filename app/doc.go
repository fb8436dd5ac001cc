// Package app is the fog quiz as an ebiten.Game.
//
// Screens (password gate, topic landing, one screen per question, final
// score with leaderboard) are laid out on a fixed design canvas. A
// [mist.Renderer] draws fog over them whose density follows navigation
// through a donburi event bridge, and pointer input clears it locally.
// F1 opens a console for live fog tuning.
//
// Configuration is YAML: the embedded defaults.yaml overlaid by an
// optional user file (see [Load]).
package app
