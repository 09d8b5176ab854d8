package climategame

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tags what landing on an event does.
type Kind int

const (
	Gain Kind = iota
	Lose
	Win
	GameOver
)

var kindNames = map[Kind]string{
	Gain:     "gain",
	Lose:     "lose",
	Win:      "win",
	GameOver: "gameover",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String, case-insensitive.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Terminal reports whether landing on the event ends the game.
func (k Kind) Terminal() bool {
	return k == Win || k == GameOver
}

// Event is one spot on the board.
type Event struct {
	Text   string
	Kind   Kind
	Points int
}

// Delta is the score change applied when landing on e.
func (e Event) Delta() int {
	switch e.Kind {
	case Gain:
		return e.Points
	case Lose:
		return -e.Points
	default:
		return 0
	}
}

// Deck is the ordered list of board spots.
type Deck []Event

// DefaultDeck is the standard 25-spot climate board.
func DefaultDeck() Deck {
	return Deck{
		{"You plant trees and gain 10 points!", Gain, 10},
		{"You start a recycling program and gain 5 points!", Gain, 5},
		{"A wildfire destroys resources. Lose 15 points.", Lose, 15},
		{"You build a solar farm. Gain 8 points!", Gain, 8},
		{"Flooding in your area. Lose 10 points.", Lose, 10},
		{"You organize a climate strike. Gain 6 points!", Gain, 6},
		{"A hurricane hits. Lose 12 points.", Lose, 12},
		{"You invent better insulation. Gain 7 points!", Gain, 7},
		{"You ignore rising sea levels. Lose 8 points.", Lose, 8},
		{"Community composting started. Gain 9 points!", Gain, 9},
		{"You face a heatwave. Lose 6 points.", Lose, 6},
		{"You install green roofs. Gain 4 points!", Gain, 4},
		{"Glacier melts and sea levels rise. Lose 9 points.", Lose, 9},
		{"You publish climate research. Gain 5 points!", Gain, 5},
		{"Carbon tax legislation fails. Lose 7 points.", Lose, 7},
		{"You retrofit buildings. Gain 10 points!", Gain, 10},
		{"You host a green tech conference. Gain 5 points!", Gain, 5},
		{"You cut funding to environmental programs. Lose 10 points.", Lose, 10},
		{"You support wind power. Gain 6 points!", Gain, 6},
		{"A drought reduces crop yield. Lose 5 points.", Lose, 5},
		{"You educate students on climate. Gain 8 points!", Gain, 8},
		{"Oil spill disaster. Game over.", GameOver, 0},
		{"You help pass clean energy laws. Gain 7 points!", Gain, 7},
		{"Major ecosystem collapses. Lose 12 points.", Lose, 12},
		{"You reach net zero emissions. You win!", Win, 0},
	}
}

var (
	ErrEmptyDeck  = errors.New("deck has no events")
	ErrOpenEnding = errors.New("last event must be win or gameover")
)

// Validate checks every event is well formed and that the final spot ends
// the game, since a roll can only land on it exactly.
func (d Deck) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDeck
	}
	for i, e := range d {
		if strings.TrimSpace(e.Text) == "" {
			return fmt.Errorf("event %d: empty text", i+1)
		}
		if _, ok := kindNames[e.Kind]; !ok {
			return fmt.Errorf("event %d: %s", i+1, e.Kind)
		}
		if e.Points < 0 {
			return fmt.Errorf("event %d: negative points %d", i+1, e.Points)
		}
		if (e.Kind == Gain || e.Kind == Lose) && e.Points == 0 {
			return fmt.Errorf("event %d: %s event needs points", i+1, e.Kind)
		}
	}
	if last := d[len(d)-1]; !last.Kind.Terminal() {
		return fmt.Errorf("event %d: %w, got %s", len(d), ErrOpenEnding, last.Kind)
	}
	return nil
}

type yamlEvent struct {
	Text   string `yaml:"text"`
	Kind   string `yaml:"kind"`
	Points int    `yaml:"points"`
}

// LoadDeck reads a YAML list of events:
//
//	- text: You plant trees and gain 10 points!
//	  kind: gain
//	  points: 10
func LoadDeck(r io.Reader) (Deck, error) {
	var raw []yamlEvent
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDeck
		}
		return nil, fmt.Errorf("decoding deck: %w", err)
	}

	deck := make(Deck, 0, len(raw))
	for i, re := range raw {
		kind, err := ParseKind(re.Kind)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		deck = append(deck, Event{Text: re.Text, Kind: kind, Points: re.Points})
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return deck, nil
}
