package core

// Default text sizes in points. Renderers scale glyphs to the cell.
const (
	FontSmall  = 16
	FontMedium = 24
	FontLarge  = 30
	FontHuge   = 50
)

// VisualSpec fully describes what one cell shows.
// It is a comparable value: two specs that render identically are equal,
// which lets the render cache suppress redundant device writes with ==.
type VisualSpec struct {
	Text       string
	FontSize   int
	Background RGB
	Foreground RGB
}

// Spec builds a VisualSpec with the default white foreground.
func Spec(text string, fontSize int, bg RGB) VisualSpec {
	return VisualSpec{
		Text:       text,
		FontSize:   fontSize,
		Background: bg,
		Foreground: White,
	}
}

// Blank returns a text-less cell filled with bg.
func Blank(bg RGB) VisualSpec {
	return Spec("", FontMedium, bg)
}

// WithForeground returns a copy of s with a different text color.
func (s VisualSpec) WithForeground(fg RGB) VisualSpec {
	s.Foreground = fg
	return s
}

// WithText returns a copy of s showing different text.
func (s VisualSpec) WithText(text string) VisualSpec {
	s.Text = text
	return s
}
