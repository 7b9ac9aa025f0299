package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/flashdeck/internal/deck"
)

// YAMLFile is a DeckRepo stored as a single YAML document:
//
//	words:
//	  - name: dog
//	    category: ka-nouns
//	    cards:
//	      en->ka: {question: dog, answer: ძაღლი}
//	      ka->en: {question: ძაღლი, answer: dog}
//	    seen: true
//	    delay: 2.5
//	    duedate: 20412
//	confusion: [[mouse, red]]
type YAMLFile struct {
	Path string
}

// NewYAMLFile returns a YAMLFile repo for path.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{Path: path}
}

func (f *YAMLFile) Load(ctx context.Context) (*deck.Snapshot, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDeck
	}
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer file.Close()

	snap, err := ReadYAML(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return snap, nil
}

// Save writes the deck to a temporary file next to Path and renames it into
// place, so an interrupted save never leaves a truncated deck behind.
func (f *YAMLFile) Save(ctx context.Context, snap *deck.Snapshot) error {
	if err := ensureDir(f.Path); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".deck-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteYAML(tmp, snap); err != nil {
		tmp.Close()
		return fmt.Errorf("write deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace deck: %w", err)
	}
	return nil
}

type yamlDeck struct {
	Words     []yamlWord `yaml:"words"`
	Confusion [][]string `yaml:"confusion,omitempty,flow"`
}

type yamlWord struct {
	Name     string    `yaml:"name"`
	Category string    `yaml:"category"`
	Cards    yamlCards `yaml:"cards"`
	Seen     bool      `yaml:"seen,omitempty"`
	Delay    float64   `yaml:"delay,omitempty"`
	Duedate  int       `yaml:"duedate,omitempty"`
}

type yamlCard struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// yamlCards is encoded as a mapping from card type to card, keeping the
// order in which the types appear.
type yamlCards []deck.StoredCard

func (c yamlCards) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, card := range c {
		var v yaml.Node
		if err := v.Encode(yamlCard{Question: card.Question, Answer: card.Answer}); err != nil {
			return nil, err
		}
		v.Style = yaml.FlowStyle
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: card.Type},
			&v)
	}
	return n, nil
}

func (c *yamlCards) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: cards must be a mapping of type to card", n.Line)
	}
	cards := make(yamlCards, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var yc yamlCard
		if err := n.Content[i+1].Decode(&yc); err != nil {
			return err
		}
		cards = append(cards, deck.StoredCard{
			Type:     n.Content[i].Value,
			Question: yc.Question,
			Answer:   yc.Answer,
		})
	}
	*c = cards
	return nil
}

// ReadYAML decodes a deck document.
func ReadYAML(r io.Reader) (*deck.Snapshot, error) {
	var doc yamlDeck
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoDeck
		}
		return nil, err
	}

	snap := &deck.Snapshot{Words: make([]deck.StoredWord, len(doc.Words))}
	for i, w := range doc.Words {
		snap.Words[i] = deck.StoredWord{
			Name:     w.Name,
			Category: w.Category,
			Cards:    []deck.StoredCard(w.Cards),
			Seen:     w.Seen,
			Delay:    w.Delay,
			Duedate:  w.Duedate,
		}
	}
	for _, pair := range doc.Confusion {
		if len(pair) != 2 {
			return nil, fmt.Errorf("confusion entry %v: want exactly two words", pair)
		}
		snap.Confusion = append(snap.Confusion, [2]string{pair[0], pair[1]})
	}
	return snap, nil
}

// WriteYAML encodes snap as a deck document.
func WriteYAML(w io.Writer, snap *deck.Snapshot) error {
	doc := yamlDeck{Words: make([]yamlWord, len(snap.Words))}
	for i, sw := range snap.Words {
		doc.Words[i] = yamlWord{
			Name:     sw.Name,
			Category: sw.Category,
			Cards:    yamlCards(sw.Cards),
			Seen:     sw.Seen,
			Delay:    sw.Delay,
			Duedate:  sw.Duedate,
		}
	}
	for _, pair := range snap.Confusion {
		doc.Confusion = append(doc.Confusion, []string{pair[0], pair[1]})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
