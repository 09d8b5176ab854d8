// Package climategame is a dice-driven walk along a board of climate events.
// Land on the final spot to win; run out of points or hit a disaster to lose.
package climategame

import (
	"math/rand/v2"
)

// DieSides is the number of faces on the die.
const DieSides = 6

// Outcome is how a game ended.
type Outcome string

const (
	InProgress  Outcome = ""
	Won         Outcome = "won"
	Catastrophe Outcome = "catastrophe"
	OutOfPoints Outcome = "out_of_points"
)

// Roller produces die rolls in [1, DieSides].
type Roller interface {
	Roll() int
}

// RandRoller rolls with math/rand/v2.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller seeds a roller. A zero seed draws from the runtime source.
func NewRandRoller(seed uint64) *RandRoller {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandRoller) Roll() int {
	return r.rng.IntN(DieSides) + 1
}

// TurnResult describes one roll.
type TurnResult struct {
	Roll     int
	Rejected bool
	Position int
	Event    Event
	Delta    int
	Score    int
	Outcome  Outcome
}

// Game is the board state.
type Game struct {
	deck     Deck
	position int
	score    int
	outcome  Outcome
}

// NewGame starts at position 0 with startScore points.
func NewGame(deck Deck, startScore int) *Game {
	return &Game{deck: deck, score: startScore}
}

func (g *Game) Position() int    { return g.position }
func (g *Game) Score() int       { return g.score }
func (g *Game) Outcome() Outcome { return g.outcome }
func (g *Game) Finished() bool   { return g.outcome != InProgress }

// Turn applies one roll. A roll that would move past the last spot is
// rejected and leaves the state untouched.
func (g *Game) Turn(roll int) TurnResult {
	res := TurnResult{Roll: roll, Position: g.position, Score: g.score, Outcome: g.outcome}
	if g.Finished() {
		res.Rejected = true
		return res
	}

	target := g.position + roll
	if roll < 1 || target >= len(g.deck) {
		res.Rejected = true
		return res
	}

	g.position = target
	ev := g.deck[target]
	delta := ev.Delta()
	g.score += delta

	switch ev.Kind {
	case Win:
		g.outcome = Won
	case GameOver:
		g.outcome = Catastrophe
	}
	if g.score <= 0 && g.outcome == InProgress {
		g.outcome = OutOfPoints
	}

	res.Position = g.position
	res.Event = ev
	res.Delta = delta
	res.Score = g.score
	res.Outcome = g.outcome
	return res
}
