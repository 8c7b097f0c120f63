package message

// VisibleTo reports whether viewer may read m. Status and public messages
// are visible to everyone; private messages only to their sender and
// recipient. The viewer doesn't have to be a registered participant.
func VisibleTo(m Message, viewer string) bool {
	switch m.Kind {
	case KindPrivate:
		return viewer == m.From || viewer == m.To
	default:
		return true
	}
}

// FilterForViewer returns the sub-sequence of msgs visible to viewer,
// relative order preserved, optionally truncated to the last limit entries.
// A limit of zero or less means no truncation. Truncation happens after
// filtering: taking the tail first would drop visible messages whenever
// hidden ones sat between them.
func FilterForViewer(msgs []Message, viewer string, limit int) []Message {
	visible := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if VisibleTo(m, viewer) {
			visible = append(visible, m)
		}
	}
	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible
}
