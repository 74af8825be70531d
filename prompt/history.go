package prompt

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// BaseHistory is the file name of the answer history in the cache
// directory.
const BaseHistory = "answers.utf8"

// HistoryEntry is one earlier answer to the question for a declaration.
type HistoryEntry struct {
	Name  string
	Value string
}

// History keeps earlier answers in a file, one "name<TAB>value" per line,
// oldest first. A nil History records nothing.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns a History persisted at path. An empty path keeps the
// history in memory.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads the history file. A missing file is an empty history.
func (h *History) Load() error {
	if h == nil || h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name, value, ok := strings.Cut(scanner.Text(), "\t")
		if !ok || name == "" || strings.TrimSpace(value) == "" {
			continue
		}

		h.entries = append(h.entries, HistoryEntry{Name: name, Value: value})
	}

	return scanner.Err()
}

// Add records value as an answer for name. An answer equal to an earlier
// one for the same name moves to the end.
func (h *History) Add(name, value string) error {
	value = strings.TrimSpace(value)
	if h == nil || value == "" || strings.ContainsAny(value, "\n\t") {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Name: strings.ToLower(name), Value: value}

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return nil
	}

	if i >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.Name + "\t" + entry.Value + "\n")

	return err
}

// Recall returns the earlier answers for name, oldest first.
func (h *History) Recall(name string) []string {
	if h == nil {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []string

	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			out = append(out, e.Value)
		}
	}

	return out
}

// Entry returns the answer at index i, oldest first.
func (h *History) Entry(i int) (HistoryEntry, error) {
	if h == nil {
		return HistoryEntry{}, ErrOutOfBounds
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of answers.
func (h *History) Len() int {
	if h == nil {
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// rewriteFile writes every entry. Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, e := range h.entries {
		if _, err := w.WriteString(e.Name + "\t" + e.Value + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}
