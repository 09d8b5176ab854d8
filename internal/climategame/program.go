package climategame

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/prompt"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// Abandoned is recorded when input closes before the game ends.
const Abandoned Outcome = "abandoned"

// Program is the interactive climate adventure.
type Program struct {
	deck       Deck
	startScore int
	roller     Roller
}

// New creates the game. A nil roller uses NewRandRoller(cfg.Seed).
func New(cfg config.GameConfig, deck Deck, roller Roller) *Program {
	if roller == nil {
		roller = NewRandRoller(cfg.Seed)
	}
	return &Program{deck: deck, startScore: cfg.StartScore, roller: roller}
}

// NewFromConfig loads cfg.DeckFile when set and falls back to DefaultDeck.
func NewFromConfig(cfg config.GameConfig) (*Program, error) {
	deck := DefaultDeck()
	if cfg.DeckFile != "" {
		f, err := os.Open(cfg.DeckFile)
		if err != nil {
			return nil, fmt.Errorf("opening deck file: %w", err)
		}
		defer f.Close()

		deck, err = LoadDeck(f)
		if err != nil {
			return nil, fmt.Errorf("loading deck %s: %w", cfg.DeckFile, err)
		}
	}
	return New(cfg, deck, nil), nil
}

func (p *Program) Name() string { return core.ProgramClimateGame }

func (p *Program) Run(ctx context.Context, env *app.Env) error {
	w := env.Out
	fmt.Fprintln(w, "Welcome to the Climate Action Adventure Game!")
	fmt.Fprintln(w, "Your mission is to reach the end of the climate challenge list")
	fmt.Fprintln(w, "without running out of points or triggering disaster.")

	game := NewGame(p.deck, p.startScore)
	run := &core.GameRun{RunMeta: env.Session.Meta()}

	var runErr error
	for !game.Finished() {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if _, err := env.Prompt.Line("\nPress Enter to roll the die..."); err != nil {
			runErr = err
			break
		}

		roll := p.roller.Roll()
		fmt.Fprintln(w, "You rolled a", roll, "!")

		res := game.Turn(roll)
		run.Turns = append(run.Turns, turnRecord(res))
		if res.Rejected {
			fmt.Fprintln(w, "Roll too high to land exactly on the last spot. Try again.")
			continue
		}

		fmt.Fprintln(w, "\nYou landed on spot", res.Position+1, ":", res.Event.Text)
		switch res.Event.Kind {
		case GameOver:
			fmt.Fprintln(w, "You triggered a climate catastrophe. Game over!")
		case Win:
			fmt.Fprintln(w, "Congratulations! You successfully addressed climate action.")
		}
		fmt.Fprintln(w, "Current score:", res.Score)
		if res.Score <= 0 {
			fmt.Fprintln(w, "You've run out of points. Game over!")
		}
	}

	run.FinalScore = game.Score()
	run.FinalPosition = game.Position()
	run.Outcome = string(game.Outcome())
	if !game.Finished() {
		run.Outcome = string(Abandoned)
	}

	env.Log.Debug("game ended", "outcome", run.Outcome, "score", run.FinalScore, "turns", len(run.Turns))

	if err := env.Store.RecordGame(run); err != nil {
		env.Log.Error("Failed to record game", "error", err)
	}

	if errors.Is(runErr, prompt.ErrInputClosed) {
		fmt.Fprintln(w)
	}
	return runErr
}

func turnRecord(res TurnResult) core.GameTurn {
	return core.GameTurn{
		Roll:     res.Roll,
		Rejected: res.Rejected,
		Position: res.Position,
		Event:    res.Event.Text,
		Delta:    res.Delta,
		Score:    res.Score,
	}
}
