package input

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// buttonKeys maps gamepad buttons onto the keys a program sees.
var buttonKeys = map[glfw.GamepadButton]byte{
	glfw.ButtonDpadUp:    'w',
	glfw.ButtonDpadLeft:  'a',
	glfw.ButtonDpadDown:  's',
	glfw.ButtonDpadRight: 'd',
	glfw.ButtonA:         ' ',
	glfw.ButtonB:         'b',
	glfw.ButtonStart:     '\r',
}

// gamepad tracks the first connected glfw gamepad.
type gamepad struct {
	joy         glfw.Joystick
	pressed     [glfw.ButtonLast + 1]bool
	initialized bool
}

func (g *gamepad) startup() {
	glfw.SetJoystickCallback(g.configure)

	// Check if we have a connected gamepad.
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			g.configure(joy, glfw.Connected)
			break
		}
	}
}

func (g *gamepad) shutdown() {
	glfw.SetJoystickCallback(nil)
	g.initialized = false
}

// update returns the keys for all buttons which went down since
// the previous call.
func (g *gamepad) update() []byte {
	if !g.initialized {
		return nil
	}

	state := g.joy.GetGamepadState()
	if state == nil {
		return nil
	}

	var keys []byte
	for btn, action := range state.Buttons {
		pressed := action == glfw.Press
		if pressed && !g.pressed[btn] {
			if key, ok := buttonKeys[glfw.GamepadButton(btn)]; ok {
				keys = append(keys, key)
			}
		}
		g.pressed[btn] = pressed
	}

	return keys
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (g *gamepad) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	g.initialized = event == glfw.Connected && joy.IsGamepad()
	g.joy = joy

	if g.initialized {
		log.Println("input: gamepad connected")
	} else {
		log.Println("input: gamepad disconnected")
	}

	for btn := range g.pressed {
		g.pressed[btn] = false
	}
}
