package sdl

import (
	"github.com/veandco/go-sdl2/sdl"
)

// keyMap maps the left side of a QWERTY keyboard to the hexadecimal
// keypad layout of the original machine:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   <-   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var keyMap = map[sdl.Keycode]byte{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

func (f *Frontend) handleKey(ev *sdl.KeyboardEvent) {
	// key repeats would register as extra press edges
	if ev.Repeat != 0 {
		return
	}

	key, ok := keyMap[ev.Keysym.Sym]
	if !ok {
		return
	}

	f.keys.SetKey(key, ev.Type == sdl.KEYDOWN)
}
