package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// ShowNotice blocks on a full-screen message until the window is closed or
// a key is pressed. It does nothing without a window.
func ShowNotice(title, message string) {
	if !rl.IsWindowReady() {
		return
	}
	r := NewRenderer()
	for !rl.WindowShouldClose() {
		if rl.GetKeyPressed() != 0 {
			return
		}
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		y := int32(rl.GetScreenHeight())/2 - 40
		r.DrawCentered(title, y, 24, r.Theme.WarnColor)
		r.DrawCentered(message, y+36, 16, r.Theme.LabelColor)
		r.DrawCentered("Press any key to exit", y+72, 12, r.Theme.LabelColor)
		rl.EndDrawing()
	}
}
