package deck

// SampleSnapshot returns a small English/Georgian corpus that shows the
// expected shape of a deck: several categories, words with differing card
// counts, and one confusion pair.
func SampleSnapshot() *Snapshot {
	return &Snapshot{
		Words: []StoredWord{
			{
				Name:     "dog",
				Category: "ka-nouns",
				Cards: []StoredCard{
					{Type: "en->ka", Question: "dog", Answer: "ძაღლი"},
					{Type: "ka->en", Question: "ძაღლი", Answer: "dog"},
				},
			},
			{
				Name:     "cat",
				Category: "ka-nouns",
				Cards: []StoredCard{
					{Type: "en->ka", Question: "cat", Answer: "კატა"},
					{Type: "ka->en", Question: "კატა", Answer: "cat"},
					{Type: "gen", Question: "cat's", Answer: "კატის"},
				},
			},
			{
				Name:     "red",
				Category: "ka-adj",
				Cards: []StoredCard{
					{Type: "en->ka", Question: "red", Answer: "წითელი"},
					{Type: "ka->en", Question: "წითელი", Answer: "red"},
				},
			},
			{
				Name:     "mouse",
				Category: "ka-nouns",
				Cards: []StoredCard{
					{Type: "en->ka", Question: "mouse", Answer: "თაგვი"},
				},
			},
		},
		Confusion: [][2]string{{"mouse", "red"}},
	}
}
