package layout

import (
	"fmt"
	"slices"
	"strings"

	"seatmap/internal/domains/seat/model"
)

const (
	fillSelected = "#fde68a"
	fillActive   = "#86efac"
	fillInactive = "#d1d5db"
	strokeColor  = "#374151"
	gridColor    = "#e5e7eb"
	labelColor   = "#111827"

	cornerRadius = 6
)

// RenderSVG projects the given seats onto the scene as an SVG document.
// Appearance is a function of state only; selection styling overrides the
// active/inactive treatment.
func RenderSVG(scene Scene, seats []model.Seat, selection []string) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		scene.Width, scene.Height, scene.Width, scene.Height)

	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)

	writeGrid(&b, scene)

	for _, seat := range seats {
		writeSeat(&b, seat, slices.Contains(selection, seat.ID))
	}

	b.WriteString(`</svg>`)

	return b.String()
}

func writeGrid(b *strings.Builder, scene Scene) {
	if scene.GridSize <= 0 {
		return
	}

	for x := scene.GridSize; x < scene.Width; x += scene.GridSize {
		fmt.Fprintf(b, `<line x1="%g" y1="0" x2="%g" y2="%g" stroke="%s" stroke-width="1"/>`,
			x, x, scene.Height, gridColor)
	}

	for y := scene.GridSize; y < scene.Height; y += scene.GridSize {
		fmt.Fprintf(b, `<line x1="0" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="1"/>`,
			y, scene.Width, y, gridColor)
	}
}

func writeSeat(b *strings.Builder, seat model.Seat, selected bool) {
	fill := fillInactive
	if seat.IsActive {
		fill = fillActive
	}

	if selected {
		fill = fillSelected
	}

	centerX, centerY := Center(seat.PositionX, seat.PositionY, seat.Width, seat.Height)

	transform := ""
	if seat.RotationAngle != 0 {
		// Rotation is around the shape's own center, not the scene origin.
		transform = fmt.Sprintf(` transform="rotate(%g %g %g)"`, seat.RotationAngle, centerX, centerY)
	}

	switch seat.Shape {
	case model.ShapeCircle, model.ShapeOval:
		fmt.Fprintf(b, `<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s" stroke="%s" stroke-width="2"%s/>`,
			centerX, centerY, seat.Width/2, seat.Height/2, fill, strokeColor, transform)
	default:
		fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" rx="%d" fill="%s" stroke="%s" stroke-width="2"%s/>`,
			seat.PositionX, seat.PositionY, seat.Width, seat.Height, cornerRadius, fill, strokeColor, transform)
	}

	fmt.Fprintf(b, `<text x="%g" y="%g" text-anchor="middle" dominant-baseline="middle" font-size="12" fill="%s"%s>%s</text>`,
		centerX, centerY, labelColor, transform, escapeText(seat.SeatNumber))
}

func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)

	return replacer.Replace(s)
}
