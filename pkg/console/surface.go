package console

// Surface is the downward notification interface the Grid drives. An
// adapter — pkg/rfbsurface in this repository — turns these calls into RFB
// wire updates; Grid itself never knows about RFB.
type Surface interface {
	// DirtyRect reports that the pixel rectangle [x0,y0)-(x1,y1) changed
	// and must be retransmitted to clients.
	DirtyRect(x0, y0, x1, y1 int)

	// CopyRect reports that the pixel rectangle [x0,y0)-(x1,y1) was moved
	// by (dx,dy) — i.e. the destination rectangle's top-left is
	// (x0+dx, y0+dy) — letting RFB use a cheap copy-region primitive.
	CopyRect(x0, y0, x1, y1, dx, dy int)

	// Bell requests the client ring its visual/audible bell.
	Bell()

	// SetCutText publishes the session selection as RFB clipboard text.
	SetCutText(text string)
}

// nullSurface discards every notification; useful for tests that only
// check grid/framebuffer state and don't care about wire traffic.
type nullSurface struct{}

func (nullSurface) DirtyRect(x0, y0, x1, y1 int)        {}
func (nullSurface) CopyRect(x0, y0, x1, y1, dx, dy int) {}
func (nullSurface) Bell()                               {}
func (nullSurface) SetCutText(text string)              {}
