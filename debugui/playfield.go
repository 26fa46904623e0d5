package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/game"
)

// RGB splits a 0xRRGGBB color into channels in [0, 1].
func RGB(c uint32) (r, g, b float32) {
	return float32(c>>16&0xff) / 255, float32(c>>8&0xff) / 255, float32(c&0xff) / 255
}

// CellColor returns the color a cell is drawn with and whether it is drawn at
// all. Fixed cells are brightened by config.FixedShade.
func CellColor(cell field.Cell) (uint32, bool) {
	switch cell.Status {
	case field.Fixed:
		return cell.Color + config.FixedShade, true
	case field.Temporary:
		return cell.Color, true
	default:
		return 0, false
	}
}

// Playfield draws the grid with cell status colors, independent of the host
// renderer.
type Playfield struct {
	cellSize    float32
	showOutline bool
}

func NewPlayfield(cellSize float32) *Playfield {
	return &Playfield{cellSize: cellSize, showOutline: true}
}

func (pf *Playfield) Render(snap *game.Snapshot) {
	if !imgui.BeginV("Playfield", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Outline", &pf.showOutline)

	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	size := pf.cellSize
	gap := float32(1)

	if pf.showOutline {
		outline := imgui.ColorU32Vec4(imgui.NewVec4(0.8, 0.8, 1, 0.25))
		drawList.AddRectFilled(origin, imgui.NewVec2(
			origin.X+float32(snap.Columns)*size,
			origin.Y+float32(snap.Rows)*size,
		), outline)
	}

	for col := 0; col < snap.Columns; col++ {
		for row := 0; row < snap.Rows; row++ {
			c, ok := CellColor(snap.Cell(col, row))
			if !ok {
				continue
			}
			r, g, b := RGB(c)
			x := origin.X + float32(col)*size
			y := origin.Y + float32(row)*size
			drawList.AddRectFilled(
				imgui.NewVec2(x+gap, y+gap),
				imgui.NewVec2(x+size-gap, y+size-gap),
				imgui.ColorU32Vec4(imgui.NewVec4(r, g, b, 1)),
			)
		}
	}

	imgui.Dummy(imgui.NewVec2(float32(snap.Columns)*size, float32(snap.Rows)*size))
	imgui.End()
}
