package histutil

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Save writes the entries to the named file, one per line, oldest first. At
// most MaxSize of the most recent entries are written, and empty entries are
// skipped. The file is created with permissions 0600.
func (h *History) Save(path string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return h.WriteEntries(f)
}

// WriteEntries writes the entries in the format of Save.
func (h *History) WriteEntries(w io.Writer) error {
	entries := h.entries
	if h.maxSize >= 0 && len(entries) > h.maxSize {
		entries = entries[len(entries)-h.maxSize:]
	}
	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if _, err := bw.WriteString(entry); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load adds the lines of the named file to the history with Add. Everything
// from the first CR or LF of a line is dropped. Empty lines and lines that
// are not valid UTF-8 are skipped.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return h.ReadEntries(f)
}

// ReadEntries adds lines read from r in the format of Load.
func (h *History) ReadEntries(r io.Reader) error {
	br := bufio.NewReader(r)
	skipped := 0
	for {
		line, err := br.ReadString('\n')
		if i := strings.IndexAny(line, "\r\n"); i >= 0 {
			line = line[:i]
		}
		switch {
		case line == "":
		case !utf8.ValidString(line):
			skipped++
		default:
			h.Add(line)
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
	}
	if skipped > 0 {
		logger.Printf("skipped %d lines that are not valid UTF-8", skipped)
	}
	return nil
}
