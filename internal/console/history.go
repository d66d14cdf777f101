package console

// History is the list of submitted commands with an Up/Down cursor.
// The cursor sits one past the last entry after every Record.
type History struct {
	entries []string
	index   int
	limit   int
}

// NewHistory creates a history keeping at most limit entries.
// A limit of zero or less keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record appends cmd unless it is empty or repeats the last entry, then
// resets the cursor past the end. Returns true if cmd was appended.
func (h *History) Record(cmd string) bool {
	added := false
	if cmd != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd) {
		h.entries = append(h.entries, cmd)
		if h.limit > 0 && len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
		added = true
	}
	h.index = len(h.entries)
	return added
}

// Load seeds the history with earlier commands, oldest first.
func (h *History) Load(cmds []string) {
	for _, c := range cmds {
		h.Record(c)
	}
}

// Previous steps towards the oldest entry and returns it. It stops at the
// first entry and returns "" when the history is empty.
func (h *History) Previous() string {
	if len(h.entries) == 0 {
		return ""
	}
	h.index = max(0, h.index-1)
	return h.entries[h.index]
}

// Next steps towards the newest entry and returns it, or "" once the
// cursor is past the end.
func (h *History) Next() string {
	if len(h.entries) == 0 {
		return ""
	}
	h.index = min(len(h.entries), h.index+1)
	if h.index < len(h.entries) {
		return h.entries[h.index]
	}
	return ""
}

// Entries returns a copy of the recorded commands, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the navigation cursor, in [0, Len()].
func (h *History) Index() int {
	return h.index
}
