package obj

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds current pressed-state for the four directional actions plus
// one-frame edges for pause, reset, and debug toggle.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	PausePressed bool
	ResetPressed bool
	DebugToggled bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and gamepad and refreshes all fields.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.DebugToggled = inpututil.IsKeyJustPressed(ebiten.KeyF1)

	i.Up = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	i.Down = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)
	i.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	i.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)

	// Gamepad: d-pad or left stick past a deadzone counts as held.
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			i.Left = true
		}
		if lx > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			i.Right = true
		}
		if ly < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop) {
			i.Up = true
		}
		if ly > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom) {
			i.Down = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight) {
			i.PausePressed = true
		}
	}
}
