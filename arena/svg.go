// arena/svg.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

import (
	"fmt"
	"io"
	"strings"
)

// SVGScale is how many output pixels correspond to one arena meter.
const SVGScale = 16

// WriteSVG renders the diagram for the given test to SVG: arena boundary,
// guide lines, all marker labels, and the segments whose steps are
// visible, in authored order.  It is a pure function of its inputs and is
// used both for printing and for file export.
func WriteSVG(w io.Writer, td *TestDefinition, vis *VisibilitySet) error {
	b := Bounds()
	width, height := b.Width()*SVGScale, b.Height()*SVGScale

	// SVG has y increasing downward; the arena has A at the bottom.
	dev := func(p [2]float32) (float32, float32) {
		q := Project(p)
		return q[0] * SVGScale, height - q[1]*SVGScale
	}

	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(w, `  <rect width="%.0f" height="%.0f" fill="white"/>`+"\n", width, height)

	// Boundary rectangle.
	x0, y0 := dev([2]float32{0, Length})
	fmt.Fprintf(w, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="black" stroke-width="2"/>`+"\n",
		x0, y0, float32(Width*SVGScale), float32(Length*SVGScale))

	// Quarter lines and centerline, always shown.
	for _, x := range []float32{Width / 4, Width / 2, 3 * Width / 4} {
		ax, ay := dev([2]float32{x, 0})
		bx, by := dev([2]float32{x, Length})
		fmt.Fprintf(w, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="gray" stroke-width="1" stroke-dasharray="6 6"/>`+"\n",
			ax, ay, bx, by)
	}

	// Marker letters.
	for _, m := range Markers() {
		p := LabelPosition(m)
		x, y := p[0]*SVGScale, height-p[1]*SVGScale
		fmt.Fprintf(w, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="18" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x, y, m.Id)
	}

	for _, seg := range td.Segments {
		if !vis.IsVisible(seg.Step) {
			continue
		}
		if err := writeSegmentSVG(w, seg, dev); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "</svg>\n")
	return nil
}

func writeSegmentSVG(w io.Writer, seg Segment, dev func([2]float32) (float32, float32)) error {
	title := seg.Label
	if seg.IsCircle() && title == "" {
		title = "circle " + seg.Direction
	}

	if seg.IsCircle() {
		p, err := MarkerPosition(seg.Circle)
		if err != nil {
			return err
		}
		cx, cy := dev(p)
		fmt.Fprintf(w, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="crimson" stroke-width="2">`,
			cx, cy, float32(CircleRadius*SVGScale))
		fmt.Fprintf(w, `<title>step %d: %s</title></circle>`+"\n", seg.Step, title)
		return nil
	}

	var pts []string
	for _, id := range seg.Line {
		p, err := MarkerPosition(id)
		if err != nil {
			return err
		}
		x, y := dev(p)
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	fmt.Fprintf(w, `  <polyline points="%s" fill="none" stroke="crimson" stroke-width="2">`,
		strings.Join(pts, " "))
	if title != "" {
		fmt.Fprintf(w, `<title>step %d: %s</title>`, seg.Step, title)
	}
	fmt.Fprintf(w, "</polyline>\n")
	return nil
}
