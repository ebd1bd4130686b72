package cli

import (
	"bufio"
	"io"
	"strings"
)

// LineReader reads lines. Both Editor and PlainReader implement it.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

var (
	_ LineReader = (*Editor)(nil)
	_ LineReader = (*PlainReader)(nil)
)

// PlainReader reads lines from input that is not an interactive terminal. It
// does no editing, and writes the prompt only when an output is given.
type PlainReader struct {
	r   *bufio.Reader
	out io.Writer
}

// NewPlainReader creates a PlainReader reading from r. If out is not nil,
// prompts are written to it.
func NewPlainReader(r io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{bufio.NewReader(r), out}
}

// ReadLine reads a line, with any trailing carriage return and newline
// removed. It returns io.EOF when there is no more input; a last line that is
// not terminated is still returned.
func (pr *PlainReader) ReadLine(prompt string) (string, error) {
	if pr.out != nil && prompt != "" {
		if _, err := io.WriteString(pr.out, prompt); err != nil {
			return "", err
		}
	}
	line, err := pr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
