package histutil

import (
	"github.com/jarvisfriends/replxx/pkg/store"
)

// DB is the part of the storage database used for persisting history.
type DB interface {
	AddCmd(cmd string) (int, error)
	LastCmds(n int) ([]store.Cmd, error)
	TrimCmds(keep int) (int, error)
}

// LoadDB adds the most recent commands of db to the history, up to its
// maximum size.
func (h *History) LoadDB(db DB) error {
	n := h.maxSize
	if n == 0 {
		return nil
	}
	cmds, err := db.LastCmds(n)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		h.Add(cmd.Text)
	}
	return nil
}

// AppendDB adds a committed line to db and trims db to keep entries. Empty
// lines are not stored.
func AppendDB(db DB, line string, keep int) error {
	if line == "" {
		return nil
	}
	if _, err := db.AddCmd(line); err != nil {
		return err
	}
	_, err := db.TrimCmds(keep)
	return err
}

// TestDB is an implementation of the DB interface that can be used for testing.
type TestDB struct {
	AllCmds []string

	OneOffError error
}

func (s *TestDB) error() error {
	err := s.OneOffError
	s.OneOffError = nil
	return err
}

func (s *TestDB) AddCmd(cmd string) (int, error) {
	if s.OneOffError != nil {
		return -1, s.error()
	}
	s.AllCmds = append(s.AllCmds, cmd)
	return len(s.AllCmds), nil
}

func (s *TestDB) LastCmds(n int) ([]store.Cmd, error) {
	if s.OneOffError != nil {
		return nil, s.error()
	}
	from := len(s.AllCmds) - n
	if from < 0 {
		from = 0
	}
	var cmds []store.Cmd
	for i := from; i < len(s.AllCmds); i++ {
		cmds = append(cmds, store.Cmd{Text: s.AllCmds[i], Seq: i + 1})
	}
	return cmds, nil
}

func (s *TestDB) TrimCmds(keep int) (int, error) {
	if s.OneOffError != nil {
		return 0, s.error()
	}
	excess := len(s.AllCmds) - keep
	if excess <= 0 {
		return 0, nil
	}
	s.AllCmds = s.AllCmds[excess:]
	return excess, nil
}
