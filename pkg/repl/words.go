package repl

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Words offered by completion and hints.
var words = []string{
	".help", ".history", ".quit", ".exit", ".clear", ".prompt ", ".save",
	"hello", "world", "db", "data", "drive", "print", "put",
	"color_black", "color_red", "color_green", "color_brown", "color_blue",
	"color_magenta", "color_cyan", "color_lightgray", "color_gray",
	"color_brightred", "color_brightgreen", "color_yellow", "color_brightblue",
	"color_brightmagenta", "color_brightcyan", "color_white", "color_normal",
}

// wordContext returns the number of codepoints at the end of line that
// belong to the word being typed. Unlike the editor's own word breaks, a
// leading dot is part of the word.
func wordContext(line string) int {
	n := 0
	for line != "" {
		r, size := utf8.DecodeLastRuneInString(line)
		if unicode.IsSpace(r) || strings.ContainsRune(`"'()[]{}=`, r) {
			break
		}
		line = line[:len(line)-size]
		n++
	}
	return n
}

func matchWords(line string) ([]string, int) {
	n := wordContext(line)
	prefix := lastRunes(line, n)
	var matches []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
	}
	return matches, n
}

func lastRunes(s string, n int) string {
	i := len(s)
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}

func completeWord(line string, _ int) ([]string, int) {
	return matchWords(line)
}

// hintWord shows hints once at least two codepoints are typed, or a dot. A
// single hint is shown in green.
func hintWord(line string, _ int, color ui.Color) ([]string, int, ui.Color) {
	n := wordContext(line)
	if n < 2 && !strings.HasPrefix(lastRunes(line, n), ".") {
		return nil, n, color
	}
	hints, n := matchWords(line)
	if len(hints) == 1 {
		color = ui.Green
	}
	return hints, n, color
}

type colorRule struct {
	re    *regexp.Regexp
	color ui.Color
}

// Rules for highlight. Later rules take precedence.
var colorRules = func() []colorRule {
	rules := []colorRule{
		{regexp.MustCompile("`"), ui.BrightCyan},
		{regexp.MustCompile(`['"\-+=/*^]`), ui.BrightBlue},
		{regexp.MustCompile(`[.()\[\]{}]`), ui.BrightMagenta},
	}
	for _, name := range []string{
		"black", "red", "green", "brown", "blue", "magenta", "cyan",
		"lightgray", "gray", "brightred", "brightgreen", "yellow",
		"brightblue", "brightmagenta", "brightcyan", "white", "normal",
	} {
		rules = append(rules, colorRule{
			regexp.MustCompile(`color_` + name + `\b`), colorOfName(name)})
	}
	return append(rules,
		colorRule{regexp.MustCompile(`\.(help|history|quit|exit|clear|prompt|save)\b`), ui.BrightMagenta},
		colorRule{regexp.MustCompile(`[-+]?[0-9]+`), ui.Yellow},
		colorRule{regexp.MustCompile(`[-+]?[0-9]*\.[0-9]+`), ui.Yellow},
		colorRule{regexp.MustCompile(`[-+]?[0-9]+e[-+]?[0-9]+`), ui.Yellow},
		colorRule{regexp.MustCompile(`".*?"`), ui.BrightGreen},
		colorRule{regexp.MustCompile(`'.*?'`), ui.BrightGreen},
	)
}()

// colorOfName maps the names used in color_ words to colors.
func colorOfName(name string) ui.Color {
	if strings.HasPrefix(name, "bright") {
		name = "bright-" + strings.TrimPrefix(name, "bright")
	}
	c, err := ui.ParseColor(name)
	if err != nil {
		panic(err)
	}
	return c
}

// highlight colors the parts of the line matched by colorRules.
func highlight(line string, colors []ui.Color) {
	// Byte offset to codepoint index.
	index := make([]int, len(line)+1)
	i := 0
	for off := 0; off < len(line); i++ {
		_, size := utf8.DecodeRuneInString(line[off:])
		for k := 0; k < size; k++ {
			index[off+k] = i
		}
		off += size
	}
	index[len(line)] = i

	for _, rule := range colorRules {
		for _, m := range rule.re.FindAllStringIndex(line, -1) {
			for j := index[m[0]]; j < index[m[1]] && j < len(colors); j++ {
				colors[j] = rule.color
			}
		}
	}
}
