package deck

// CategoryStats summarizes one category for display.
type CategoryStats struct {
	Category string
	Words    int
	Cards    int
	Seen     int
	Due      int
}

// Stats returns per-category counts in category order. A seen word is due
// when its duedate is on or before today.
func (d *Deck) Stats(today int) []CategoryStats {
	idx := make(map[string]int, len(d.Categories))
	out := make([]CategoryStats, len(d.Categories))
	for i, c := range d.Categories {
		idx[c] = i
		out[i].Category = c
	}
	for _, w := range d.Words {
		cs := &out[idx[w.Category]]
		cs.Words++
		cs.Cards += len(w.Cards)
		if w.Seen {
			cs.Seen++
			if w.Duedate <= today {
				cs.Due++
			}
		}
	}
	return out
}
