package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gravitas-015/hexplane/pkg/hex"
)

// SVG serializes shapes to a writer. Write errors stick; callers check Err
// once at the end instead of after every element.
type SVG struct {
	w   io.Writer
	err error
}

// NewSVG wraps w in an SVG serializer.
func NewSVG(w io.Writer) *SVG {
	return &SVG{w: w}
}

func (s *SVG) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

// Start writes the document header with the given viewBox.
func (s *SVG) Start(minX, minY, width, height float64) {
	s.printf("<?xml version=\"1.0\"?>\n")
	s.printf("<svg version=\"1.1\" xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\">\n",
		minX, minY, width, height)
}

// Rect writes a filled rectangle.
func (s *SVG) Rect(x, y, width, height float64, fill string) {
	s.printf("<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n",
		x, y, width, height, fill)
}

// Polygon writes a closed polygon through the given points.
func (s *SVG) Polygon(pts []hex.WorldPoint, fill, stroke string, strokeWidth float64) {
	var b strings.Builder
	for k, p := range pts {
		if k > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
	}
	s.printf("<polygon points=\"%s\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		b.String(), fill, stroke, strokeWidth)
}

// End closes the document.
func (s *SVG) End() {
	s.printf("</svg>\n")
}

// Err reports the first write error, if any.
func (s *SVG) Err() error {
	return s.err
}
