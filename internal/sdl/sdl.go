// Package sdl implements the SDL frontend: the display window, the
// keypad mapping and the beeper. All SDL calls happen on the main OS
// thread; the VM communicates through the shared display, keypad and
// tone state only.
package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/display"
	"github.com/retroenv/chip8emu/internal/emulator"
	"github.com/retroenv/chip8emu/internal/input"
	"github.com/veandco/go-sdl2/sdl"
)

const pixelDepth = 4 // ABGR8888

// Frontend owns the SDL window and renders the shared display to it.
type Frontend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	screen *display.Screen
	keys   *input.Keypad
	beeper *Beeper

	pixels []byte
}

// New initializes SDL and opens the emulator window. Must be called
// from the main OS thread.
func New(screen *display.Screen, keys *input.Keypad, scale int) (*Frontend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	f := &Frontend{
		screen: screen,
		keys:   keys,
		pixels: make([]byte, display.Width*display.Height*pixelDepth),
	}

	// alpha channel is constant
	for i := pixelDepth - 1; i < len(f.pixels); i += pixelDepth {
		f.pixels[i] = 255
	}

	var err error
	f.window, err = sdl.CreateWindow("chip8emu",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(display.Width*scale), int32(display.Height*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	f.renderer, err = sdl.CreateRenderer(f.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	// the texture keeps the machine resolution, the renderer scales it
	// to the window size
	f.texture, err = f.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), display.Width, display.Height)
	if err != nil {
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	f.beeper, err = NewBeeper()
	if err != nil {
		return nil, fmt.Errorf("creating beeper: %w", err)
	}

	return f, nil
}

// Beeper returns the audio output of the frontend.
func (f *Frontend) Beeper() *Beeper {
	return f.beeper
}

// Run services window events, audio and redraws at the display refresh
// rate. It returns when the window is closed or the context is
// canceled.
func (f *Frontend) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / emulator.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if quit := f.pollEvents(); quit {
				return nil
			}
			f.beeper.service()
			if err := f.render(); err != nil {
				return err
			}
		}
	}
}

// Close releases all SDL resources.
func (f *Frontend) Close() {
	if f.beeper != nil {
		f.beeper.Close()
	}
	if f.texture != nil {
		_ = f.texture.Destroy()
	}
	if f.renderer != nil {
		_ = f.renderer.Destroy()
	}
	if f.window != nil {
		_ = f.window.Destroy()
	}
	sdl.Quit()
}

func (f *Frontend) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE && ev.Type == sdl.KEYDOWN {
				return true
			}
			f.handleKey(ev)
		}
	}
	return false
}

// render copies the display to the window when its content changed
// since the last frame.
func (f *Frontend) render() error {
	if !f.screen.TakeDirty() {
		return nil
	}

	pixels := f.screen.Snapshot()
	i := 0
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			var value byte
			if pixels[y][x] {
				value = 0xFF
			}
			f.pixels[i] = value
			f.pixels[i+1] = value
			f.pixels[i+2] = value
			i += pixelDepth
		}
	}

	if err := f.texture.Update(nil, f.pixels, display.Width*pixelDepth); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	if err := f.renderer.Copy(f.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	f.renderer.Present()
	return nil
}
