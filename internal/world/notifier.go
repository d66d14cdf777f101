package world

// Notifier holds the single notice shown at the bottom of the window.
// A new notice replaces the previous one.
type Notifier struct {
	text string
}

// Notify replaces the current notice. An empty message clears it.
func (n *Notifier) Notify(msg string) {
	n.text = msg
}

// Notice returns the current notice.
func (n *Notifier) Notice() string {
	return n.text
}

// Clear removes the notice.
func (n *Notifier) Clear() {
	n.text = ""
}
