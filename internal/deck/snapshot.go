package deck

// Snapshot is the storage form of a corpus, as exchanged with a store.
// Cards carry their type instead of a parent link, and confusion is a flat
// list of unordered name pairs.
type Snapshot struct {
	Words     []StoredWord `json:"words" yaml:"words"`
	Confusion [][2]string  `json:"confusion" yaml:"confusion"`
}

// StoredWord is a Word without derived fields.
type StoredWord struct {
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Cards    []StoredCard `json:"cards"`
	Seen     bool         `json:"seen"`
	Delay    float64      `json:"delay,omitempty"`
	Duedate  int          `json:"duedate,omitempty"`
}

// StoredCard is one entry of a word's type -> card mapping.
type StoredCard struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ResetProgress forgets all scheduling history, leaving every word unseen.
func (s *Snapshot) ResetProgress() {
	for i := range s.Words {
		s.Words[i].Seen = false
		s.Words[i].Delay = 0
		s.Words[i].Duedate = 0
	}
}

// HasWord reports whether a word with the given name is present.
func (s *Snapshot) HasWord(name string) bool {
	for _, w := range s.Words {
		if w.Name == name {
			return true
		}
	}
	return false
}
