package layout

const (
	minZoom     = 0.25
	maxZoom     = 4.0
	defaultZoom = 1.0
)

// View is the mutable interaction state layered over a computed layout:
// pan offset, zoom factor and the hovered/selected node. It lives with
// the rendering consumer; the layout function itself stays pure.
type View struct {
	PanX float64
	PanY float64
	Zoom float64

	// HoveredID and SelectedID are keyword ids; nil means none.
	HoveredID  *int
	SelectedID *int
}

// NewView returns a view at the origin with neutral zoom.
func NewView() *View {
	return &View{Zoom: defaultZoom}
}

// Pan shifts the view offset by a screen-space delta.
func (v *View) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// SetZoom clamps and applies a zoom factor.
func (v *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	v.Zoom = zoom
}

// ZoomBy scales the current zoom by a factor, clamped.
func (v *View) ZoomBy(factor float64) {
	v.SetZoom(v.Zoom * factor)
}

// Hover marks a node as hovered.
func (v *View) Hover(keywordID int) {
	id := keywordID
	v.HoveredID = &id
}

// ClearHover resets hover state.
func (v *View) ClearHover() {
	v.HoveredID = nil
}

// Select marks a node as selected; selecting it again deselects.
func (v *View) Select(keywordID int) {
	if v.SelectedID != nil && *v.SelectedID == keywordID {
		v.SelectedID = nil
		return
	}
	id := keywordID
	v.SelectedID = &id
}

// Reset returns the view to its initial state.
func (v *View) Reset() {
	*v = View{Zoom: defaultZoom}
}

// Project maps a layout coordinate into screen space under the current
// pan and zoom.
func (v *View) Project(x, y float64) (float64, float64) {
	return x*v.Zoom + v.PanX, y*v.Zoom + v.PanY
}
