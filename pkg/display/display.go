// Package display is a thin ebiten front end over the emulator core's
// read-only frame and joypad accessors. It is intentionally kept out
// of the core module's import graph (cmd/dmgboy-gui is its only
// caller) so the headless build never links a graphics stack.
package display

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/tjweir/dmgboy/internal/gameboy"
	"github.com/tjweir/dmgboy/internal/joypad"
)

const (
	screenWidth  = 160
	screenHeight = 144
)

// keymap mirrors the default bindings a DMG pad maps onto a keyboard.
var keymap = map[ebiten.Key]joypad.Button{
	ebiten.KeyZ:          joypad.ButtonA,
	ebiten.KeyX:          joypad.ButtonB,
	ebiten.KeyBackspace:  joypad.ButtonSelect,
	ebiten.KeyEnter:      joypad.ButtonStart,
	ebiten.KeyArrowRight: joypad.ButtonRight,
	ebiten.KeyArrowLeft:  joypad.ButtonLeft,
	ebiten.KeyArrowUp:    joypad.ButtonUp,
	ebiten.KeyArrowDown:  joypad.ButtonDown,
}

// Game adapts a gameboy.GameBoy to ebiten's Game interface.
type Game struct {
	gb       *gameboy.GameBoy
	tex      *ebiten.Image
	lastSeen uint64
	scaled   *image.RGBA
	scale    int
}

// New returns a Game that steps gb on every Update call and renders
// its frame buffer scaled by factor.
func New(gb *gameboy.GameBoy, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		gb:     gb,
		tex:    ebiten.NewImage(screenWidth, screenHeight),
		scaled: image.NewRGBA(image.Rect(0, 0, screenWidth*scale, screenHeight*scale)),
		scale:  scale,
	}
}

// Update runs CPU steps until the PPU completes a new frame (or the
// guest executes STOP), so each call yields at most one frame.
func (g *Game) Update() error {
	g.pollInput()
	for g.gb.PPU.FrameCount() == g.lastSeen {
		if err := g.gb.Step(); err != nil {
			return err
		}
		if g.gb.CPU.Stopped {
			return nil
		}
	}
	g.lastSeen = g.gb.PPU.FrameCount()
	return nil
}

func (g *Game) pollInput() {
	for key, button := range keymap {
		g.gb.Joypad.SetPressed(button, ebiten.IsKeyPressed(key))
	}
}

// Draw copies the core's ARGB8888 snapshot into the ebiten texture,
// integer-scaling it with x/image/draw rather than a hand-rolled
// nearest-neighbor loop.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.gb.PPU.Frame()
	src := &image.RGBA{
		Pix:    argbToRGBA(frame[:]),
		Stride: screenWidth * 4,
		Rect:   image.Rect(0, 0, screenWidth, screenHeight),
	}
	draw.NearestNeighbor.Scale(g.scaled, g.scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	g.tex = ebiten.NewImageFromImage(g.scaled)
	screen.DrawImage(g.tex, nil)
}

// Layout reports the scaled output resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth * g.scale, screenHeight * g.scale
}

// argbToRGBA converts the core's 0xAARRGGBB pixels into the
// byte-order image.RGBA expects.
func argbToRGBA(pixels []uint32) []byte {
	out := make([]byte, len(pixels)*4)
	for i, px := range pixels {
		a := byte(px >> 24)
		r := byte(px >> 16)
		gr := byte(px >> 8)
		b := byte(px)
		out[i*4+0] = r
		out[i*4+1] = gr
		out[i*4+2] = b
		out[i*4+3] = a
	}
	return out
}
