// renderer/font.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	gomath "math"
	"sort"
	"strconv"
	"unsafe"

	"github.com/hfinley/centerline/util"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Each loaded (font,size) combination is represented by (surprise) a Font.
type Font struct {
	// Glyphs for the commonly-used ASCII range can be looked up using a
	// directly-mapped array, for efficiency.
	lowGlyphs [128]*Glyph
	// The remaining glyphs are stored in a map.
	glyphs map[rune]*Glyph
	// Font size
	Size  int
	Ifont imgui.Font
	Id    FontIdentifier
	TexId uint32 // texture that holds the glyph texture atlas
}

func MakeFont(size int, id FontIdentifier, ifont *imgui.Font) *Font {
	f := &Font{
		glyphs: make(map[rune]*Glyph),
		Size:   size,
		Id:     id,
	}
	if ifont != nil {
		f.Ifont = *ifont
	}
	return f
}

// While the following could be found via the imgui.FontGlyph interface, cgo calls into C++ code are
// slow, especially if we do ~10 of them for each character drawn. So we cache the information we need
// to draw each one here.
type Glyph struct {
	// Vertex positions for the quad to draw
	X0, Y0, X1, Y1 float32
	// Texture coordinates in the font atlas
	U0, V0, U1, V1 float32
	// Distance to advance in x after the character.
	AdvanceX float32
	// Is it a visible character (i.e., not space, tab, CR, ...)
	Visible bool
}

func (g *Glyph) Width() float32 {
	return g.X1 - g.X0
}

func (g *Glyph) Height() float32 {
	return g.Y1 - g.Y0
}

// FontIdentifier is used for looking up fonts in the table of available
// ones.
type FontIdentifier struct {
	Name string
	Size int
}

// Internal: lookup the glyph for a rune in imgui's font atlas and then
// copy over the necessary information into our Glyph structure.
func (f *Font) createGlyph(ch rune) *Glyph {
	ig := f.Ifont.FindGlyph(imgui.Wchar(ch))
	g := &Glyph{X0: ig.X0(), Y0: ig.Y0(), X1: ig.X1(), Y1: ig.Y1(),
		U0: ig.U0(), V0: ig.V0(), U1: ig.U1(), V1: ig.V1(),
		AdvanceX: ig.AdvanceX(), Visible: ig.Visible() != 0}
	return g
}

// LookupGlyph returns the Glyph for the specified rune.
func (f *Font) LookupGlyph(ch rune) *Glyph {
	if int(ch) < len(f.lowGlyphs) {
		if g := f.lowGlyphs[ch]; g == nil {
			g = f.createGlyph(ch)
			f.lowGlyphs[ch] = g
			return g
		} else {
			return g
		}
	} else if g, ok := f.glyphs[ch]; !ok {
		g = f.createGlyph(ch)
		f.glyphs[ch] = g
		return g
	} else {
		return g
	}
}

// Returns the bound of the specified text in the given font, assuming the
// given pixel spacing between lines.
func (font *Font) BoundText(s string, spacing int) (int, int) {
	dy := font.Size + spacing
	py := dy
	var px, xmax float32
	for _, ch := range s {
		if ch == '\n' {
			px = 0
			py += dy
		} else {
			glyph := font.LookupGlyph(ch)
			px += glyph.AdvanceX
			if px > xmax {
				xmax = px
			}
		}
	}

	return int(gomath.Ceil(float64(xmax))), py
}

const DefaultFontName = "ProggyClean"

// All of the available fonts.
var fonts map[FontIdentifier]*Font

// FontsInit loads the built-in imgui font at a handful of sizes and
// uploads the glyph atlas to the given Renderer. It must be called before
// any text is drawn.
func FontsInit(r Renderer) {
	lg.Info("Starting to initialize fonts")
	fonts = make(map[FontIdentifier]*Font)
	io := imgui.CurrentIO()

	for _, size := range []int{13, 16, 20, 26} {
		config := imgui.NewFontConfig()
		config.SetSizePixels(float32(size))
		ifont := io.Fonts().AddFontDefaultV(config)

		id := FontIdentifier{Name: DefaultFontName, Size: size}
		fonts[id] = MakeFont(size, id, ifont)
	}

	pixels, w, h, bpp := io.Fonts().GetTextureDataAsRGBA32()
	lg.Infof("Fonts texture used %.1f MB", float32(w*h*bpp)/(1024*1024))
	rgb8Image := &image.RGBA{
		Pix:    unsafe.Slice((*uint8)(pixels), bpp*w*h),
		Stride: int(4 * w),
		Rect:   image.Rectangle{Max: image.Point{X: int(w), Y: int(h)}}}
	atlasId := r.CreateTextureFromImage(rgb8Image, true /* nearest */)
	io.Fonts().SetTexID(imgui.TextureID(atlasId))

	// Patch up the texture id after the atlas was created with the
	// TextureDataRGBA32 call above.
	for _, font := range fonts {
		font.TexId = atlasId
	}

	lg.Info("Finished initializing fonts")
}

// getAllFonts returns a FontIdentifier slice that gives identifiers for
// all of the available fonts, sorted by font name and then within each
// name, by font size.
func getAllFonts() []FontIdentifier {
	var fs []FontIdentifier
	for f := range fonts {
		fs = append(fs, f)
	}

	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Name == fs[j].Name {
			return fs[i].Size < fs[j].Size
		}
		return fs[i].Name < fs[j].Name
	})

	return fs
}

func DrawFontSizeSelector(id *FontIdentifier) (newFont *Font, changed bool) {
	if imgui.BeginComboV(fmt.Sprintf("Font Size##%s", id.Name), strconv.Itoa(id.Size), imgui.ComboFlagsHeightLarge) {
		for _, font := range getAllFonts() {
			if font.Name == id.Name {
				if imgui.SelectableBoolV(strconv.Itoa(font.Size), id.Size == font.Size, 0, imgui.Vec2{}) {
					id.Size = font.Size
					newFont = GetFont(font)
					changed = true
				}
			}
		}
		imgui.EndCombo()
	}
	return
}

func GetFont(id FontIdentifier) *Font {
	if font, ok := fonts[id]; ok {
		return font
	} else {
		return nil
	}
}

func GetDefaultFont() *Font {
	return GetFont(FontIdentifier{Name: DefaultFontName, Size: 13})
}

func AvailableFontSizes(name string) []int {
	sizes := make(map[int]interface{})
	for fontid := range fonts {
		if fontid.Name == name {
			sizes[fontid.Size] = nil
		}
	}
	return util.SortedMapKeys(sizes)
}
