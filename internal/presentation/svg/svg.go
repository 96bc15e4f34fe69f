// Package svg draws a computed layout as a standalone SVG document.
package svg

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aretw0/seqline/pkg/domain"
)

const (
	defaultFont     = "Arial, sans-serif"
	defaultFontSize = 12
	selfCallWidth   = 30
	selfCallDrop    = 10
)

// Render writes the SVG drawing of layout to w.
func Render(w io.Writer, layout *domain.Layout) error {
	_, err := io.WriteString(w, String(layout))
	return err
}

// String returns the SVG drawing of layout.
func String(layout *domain.Layout) string {
	cfg := layout.Config
	if cfg == (domain.Config{}) {
		cfg = domain.DefaultConfig()
	}
	r := renderer{cfg: cfg}
	width := 2*r.cfg.Margin + len(layout.Participants)*r.cfg.ParticipantSpacing

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
<defs>
<marker id="arrow" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto"><path d="M0,0 L9,4 L0,8" fill="none" stroke="black"/></marker>
<style>text { font-family: %s; font-size: %dpx; }</style>
</defs>
<rect width="100%%" height="100%%" fill="white"/>
`, width, layout.Height, width, layout.Height, defaultFont, defaultFontSize)
	if layout.Name != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(layout.Name))
	}

	for _, p := range layout.Participants {
		r.participant(&sb, p)
	}
	for _, seg := range layout.Extras {
		pos := positionOf(layout, seg.Owner)
		if pos < 0 {
			continue
		}
		r.cross(&sb, r.center(pos), seg)
	}
	for _, m := range layout.Messages {
		r.message(&sb, m)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

type renderer struct {
	cfg domain.Config
}

// center is the x coordinate of the trunk of the participant at pos.
func (r renderer) center(pos int) int {
	return r.cfg.Margin + r.cfg.ParticipantSpacing/2 + pos*r.cfg.ParticipantSpacing
}

// offset shifts nested activations sideways so overlapping bars stay visible.
func (r renderer) offset(dir domain.Direction, level int) int {
	shift := level * r.cfg.SubLifelineWidth / 2
	switch dir {
	case domain.DirectionLeft:
		return -shift
	case domain.DirectionRight:
		return shift
	}
	return 0
}

func (r renderer) participant(sb *strings.Builder, p domain.ParticipantLayout) {
	x := r.center(p.Position)
	// lines first so bars are drawn over them
	for _, v := range p.Views {
		if v.Visible && v.Kind == domain.SegmentLine {
			fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="gray" stroke-dasharray="4,3"/>`+"\n",
				x, v.Top, x, v.Bottom())
		}
	}
	for _, v := range p.Views {
		if v.Visible && v.Kind == domain.SegmentBar && v.Height > 0 {
			bx := x + r.offset(v.Direction, v.SideLevel) - v.Width/2
			fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="white" stroke="black"/>`+"\n",
				bx, v.Top, v.Width, v.Height)
		}
	}
	if p.Head.Visible {
		r.head(sb, x, p.Head)
	}
}

func (r renderer) head(sb *strings.Builder, x int, h domain.Segment) {
	label := html.EscapeString(h.Label)
	decoration := ""
	if h.Underlined {
		decoration = ` text-decoration="underline"`
	}
	if h.Kind == domain.SegmentFigure {
		cy := h.Top + 8
		fmt.Fprintf(sb, `<g stroke="black" fill="none"><circle cx="%d" cy="%d" r="6"/>`+
			`<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+
			`<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+
			`<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+
			`<line x1="%d" y1="%d" x2="%d" y2="%d"/></g>`+"\n",
			x, cy,
			x, cy+6, x, cy+20,
			x-8, cy+11, x+8, cy+11,
			x, cy+20, x-7, cy+28,
			x, cy+20, x+7, cy+28)
		fmt.Fprintf(sb, `<text x="%d" y="%d" text-anchor="middle">%s</text>`+"\n", x, h.Bottom()-2, label)
		return
	}
	w := r.cfg.ParticipantSpacing - 20
	fmt.Fprintf(sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="white" stroke="black"/>`+"\n",
		x-w/2, h.Top, w, h.Height)
	fmt.Fprintf(sb, `<text x="%d" y="%d" text-anchor="middle"%s>%s</text>`+"\n",
		x, h.Top+h.Height/2+defaultFontSize/3, decoration, label)
}

func (r renderer) cross(sb *strings.Builder, x int, c domain.Segment) {
	half := c.Width / 2
	fmt.Fprintf(sb, `<g stroke="black" stroke-width="2"><line x1="%d" y1="%d" x2="%d" y2="%d"/><line x1="%d" y1="%d" x2="%d" y2="%d"/></g>`+"\n",
		x-half, c.Top, x+half, c.Bottom(),
		x+half, c.Top, x-half, c.Bottom())
}

func (r renderer) message(sb *strings.Builder, m domain.MessageLayout) {
	x1 := r.cfg.Margin / 2
	if m.FromPos >= 0 {
		x1 = r.center(m.FromPos) + r.offset(m.FromSide, m.FromLvl)
	}
	x2 := r.cfg.Margin / 2
	if m.ToPos >= 0 {
		x2 = r.center(m.ToPos) + r.offset(m.ToSide, m.ToLvl)
	}
	dash := ""
	if m.Kind == domain.MessageReturn {
		dash = ` stroke-dasharray="6,4"`
	}
	text := html.EscapeString(m.Text)

	if m.FromPos >= 0 && m.FromPos == m.ToPos {
		fmt.Fprintf(sb, `<polyline points="%d,%d %d,%d %d,%d %d,%d" fill="none" stroke="black"%s marker-end="url(#arrow)"/>`+"\n",
			x1, m.Y, x1+selfCallWidth, m.Y, x1+selfCallWidth, m.Y+selfCallDrop, x2, m.Y+selfCallDrop, dash)
		if text != "" {
			fmt.Fprintf(sb, `<text x="%d" y="%d">%s</text>`+"\n", x1+selfCallWidth+4, m.Y+selfCallDrop/2, text)
		}
		return
	}

	fmt.Fprintf(sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"%s marker-end="url(#arrow)"/>`+"\n",
		x1, m.Y, x2, m.Y, dash)
	if text != "" {
		fmt.Fprintf(sb, `<text x="%d" y="%d" text-anchor="middle">%s</text>`+"\n", (x1+x2)/2, m.Y-3, text)
	}
}

func positionOf(layout *domain.Layout, name string) int {
	if p, ok := layout.Participant(name); ok {
		return p.Position
	}
	return -1
}
