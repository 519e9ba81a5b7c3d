package gesture

// Fixed popup dimensions and the margin kept from viewport edges.
const (
	menuWidth  = 150
	menuHeight = 50
	menuMargin = 10
)

// ClampMenuPosition adjusts a raw page coordinate so the fixed-size
// popup stays inside the visible scrolled viewport: clamped to the
// horizontal scroll extents, flipped above the anchor when it would
// overflow the bottom edge.
func ClampMenuPosition(p Point, vp Viewport) Point {
	x, y := p.X, p.Y

	if x+menuWidth > vp.ScrollLeft+vp.Width {
		x = vp.ScrollLeft + vp.Width - menuWidth - menuMargin
	}
	if x < vp.ScrollLeft {
		x = vp.ScrollLeft + menuMargin
	}

	if y+menuHeight > vp.ScrollTop+vp.Height {
		y = y - menuHeight - menuMargin
	}
	if y < vp.ScrollTop {
		y = vp.ScrollTop + menuMargin
	}

	return Point{X: x, Y: y}
}

// HintPosition anchors the floating capture hint to the selection's
// bounding box, just under its bottom-left corner, clamped the same way
// as the menu.
func HintPosition(rect Rect, vp Viewport) Point {
	return ClampMenuPosition(Point{X: rect.Left, Y: rect.Bottom}, vp)
}
