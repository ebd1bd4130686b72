package ui

import "strings"

// Segment is a piece of text with a color.
type Segment struct {
	Color Color
	Text  string
}

// Text is a list of colored segments.
type Text []Segment

// T constructs a Text with a single segment.
func T(s string, c Color) Text {
	if s == "" {
		return nil
	}
	return Text{{c, s}}
}

// Append appends s with color c, merging it into the last segment when the
// colors are the same.
func (t Text) Append(s string, c Color) Text {
	if s == "" {
		return t
	}
	if n := len(t); n > 0 && t[n-1].Color == c {
		t[n-1].Text += s
		return t
	}
	return append(t, Segment{c, s})
}

// Concat returns a new Text with the segments of t followed by those of u.
func (t Text) Concat(u Text) Text {
	result := append(Text(nil), t...)
	for _, seg := range u {
		result = result.Append(seg.Text, seg.Color)
	}
	return result
}

// String returns the text without colors.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString returns a representation of the text with SGR sequences. Every
// segment with a color other than Default is wrapped in a color change and a
// reset.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		if sgr := seg.Color.SGR(); sgr != "" {
			sb.WriteString("\033[0;" + sgr + "m")
			sb.WriteString(seg.Text)
			sb.WriteString("\033[0m")
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}
