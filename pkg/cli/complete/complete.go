// Package complete decides what a completion request does to the line and
// lays out the listing of ambiguous candidates.
package complete

import "github.com/jarvisfriends/replxx/pkg/wcwidth"

// LongestCommonPrefix returns the length in codepoints of the longest prefix
// shared by all candidates. It returns 0 for an empty list.
func LongestCommonPrefix(cands []string) int {
	if len(cands) == 0 {
		return 0
	}
	first := []rune(cands[0])
	n := len(first)
	for _, cand := range cands[1:] {
		i := 0
		for _, r := range cand {
			if i >= n || r != first[i] {
				break
			}
			i++
		}
		n = i
	}
	return n
}

// Kind is the kind of a Plan.
type Kind int

// Values for Kind.
const (
	// There are no candidates.
	None Kind = iota
	// The context is replaced with Plan.Insert.
	Extend
	// The candidates are ambiguous and should be listed.
	List
)

func (k Kind) String() string {
	switch k {
	case Extend:
		return "extend"
	case List:
		return "list"
	default:
		return "none"
	}
}

// Plan is the outcome of a completion request.
type Plan struct {
	Kind Kind
	// Text that replaces the context, for Extend.
	Insert []rune
	// Length of the common prefix used for Extend and for the listing.
	CommonPrefix int
	// Whether more than one candidate is in play.
	Ambiguous bool
}

// Decide decides what to do with the candidates returned by a completer for
// a context of contextLen codepoints. When selected is a valid index, that
// candidate is used alone, as when a hint is selected.
func Decide(cands []string, contextLen, selected int) Plan {
	if len(cands) == 0 {
		return Plan{Kind: None}
	}
	chosen := 0
	count := len(cands)
	if selected >= 0 && selected < len(cands) {
		chosen = selected
		count = 1
	}
	var lcp int
	if count == 1 {
		lcp = len([]rune(cands[chosen]))
	} else {
		lcp = LongestCommonPrefix(cands)
	}
	plan := Plan{CommonPrefix: lcp, Ambiguous: count != 1}
	if lcp > contextLen || count == 1 {
		plan.Kind = Extend
		plan.Insert = []rune(cands[chosen])[:lcp]
	} else {
		plan.Kind = List
	}
	return plan
}

// Grid is the column-major layout of a listing. Candidate i is in column
// i / Rows and row i % Rows.
type Grid struct {
	Count       int
	Columns     int
	Rows        int
	ColumnWidth int
	// Column width of each candidate.
	Widths []int
}

// Layout lays out cands on a screen of the given width, measuring runes with
// runeWidth, or wcwidth.OfRune if it is nil. Every column is as wide as the
// widest candidate plus two spaces, and there is at least one column.
func Layout(cands []string, width int, runeWidth func(rune) int) Grid {
	if runeWidth == nil {
		runeWidth = wcwidth.OfRune
	}
	widths := make([]int, len(cands))
	longest := 0
	for i, cand := range cands {
		widths[i] = wcwidth.OfFunc(cand, runeWidth)
		longest = max(longest, widths[i])
	}
	colWidth := longest + 2
	cols := 1
	if width > 0 {
		cols = max(width/colWidth, 1)
	}
	return Grid{
		Count:       len(cands),
		Columns:     cols,
		Rows:        (len(cands) + cols - 1) / cols,
		ColumnWidth: colWidth,
		Widths:      widths,
	}
}

// Row returns the indices of the candidates in a row, left to right.
func (g Grid) Row(row int) []int {
	var indices []int
	for col := 0; col < g.Columns; col++ {
		if i := col*g.Rows + row; i < g.Count {
			indices = append(indices, i)
		}
	}
	return indices
}

// IsLastInRow reports whether the candidate at index is the last one in its
// row. Only candidates that are not last in their row are padded.
func (g Grid) IsLastInRow(index int) bool {
	return index+g.Rows >= g.Count
}
