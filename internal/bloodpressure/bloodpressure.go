// Package bloodpressure derives pulse pressure and mean arterial pressure from
// a single systolic/diastolic reading.
package bloodpressure

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/pkg/core"
)

const (
	// HighPulsePressure is the pulse pressure (mmHg) above which it is high.
	HighPulsePressure = 80.0
	// LowMAP is the mean arterial pressure (mmHg) below which care is needed.
	LowMAP = 60.0
)

var (
	ErrNotNumeric         = errors.New("pressure is not numeric")
	ErrNonPositive        = errors.New("pressure is not positive")
	ErrSystolicNotGreater = errors.New("systolic pressure not greater than diastolic")
)

// Message returns the text shown to the user for a rejected reading.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotNumeric):
		return "Invalid input. Please enter numeric values."
	case errors.Is(err, ErrNonPositive):
		return "Invalid input. Pressures must be positive numbers."
	case errors.Is(err, ErrSystolicNotGreater):
		return "Systolic pressure must be greater than diastolic pressure."
	default:
		return err.Error()
	}
}

// Assessment is the evaluation of one valid reading.
type Assessment struct {
	Systolic             float64
	Diastolic            float64
	PulsePressure        float64
	MeanArterialPressure float64
}

// PulsePressureHigh reports pulse pressure above 80 mmHg.
func (a Assessment) PulsePressureHigh() bool {
	return a.PulsePressure > HighPulsePressure
}

// MAPLow reports a mean arterial pressure under 60 mmHg.
func (a Assessment) MAPLow() bool {
	return a.MeanArterialPressure < LowMAP
}

// PulsePressure is systolic minus diastolic.
func PulsePressure(systolic, diastolic float64) float64 {
	return systolic - diastolic
}

// MeanArterialPressure is diastolic plus a third of the pulse pressure.
func MeanArterialPressure(diastolic, pulsePressure float64) float64 {
	return diastolic + pulsePressure/3
}

// Evaluate validates a reading and derives both pressures.
func Evaluate(systolic, diastolic float64) (Assessment, error) {
	if systolic <= 0 || diastolic <= 0 {
		return Assessment{}, ErrNonPositive
	}
	if systolic <= diastolic {
		return Assessment{}, ErrSystolicNotGreater
	}

	pp := PulsePressure(systolic, diastolic)
	return Assessment{
		Systolic:             systolic,
		Diastolic:            diastolic,
		PulsePressure:        pp,
		MeanArterialPressure: MeanArterialPressure(diastolic, pp),
	}, nil
}

// ParseReading parses both raw inputs. There is no retry: any failure is
// final for the run.
func ParseReading(rawSystolic, rawDiastolic string) (Assessment, error) {
	systolic, err := parsePressure(rawSystolic)
	if err != nil {
		return Assessment{}, err
	}
	diastolic, err := parsePressure(rawDiastolic)
	if err != nil {
		return Assessment{}, err
	}
	return Evaluate(systolic, diastolic)
}

func parsePressure(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	return v, nil
}

// Program is the interactive analyzer.
type Program struct{}

// New creates the blood pressure program.
func New() *Program {
	return &Program{}
}

func (p *Program) Name() string { return core.ProgramBloodPressure }

// Run asks once for both pressures. A rejected reading prints its message
// and is returned as the error so the command can exit non-zero.
func (p *Program) Run(ctx context.Context, env *app.Env) error {
	rawSystolic, err := env.Prompt.Line("Enter your systolic pressure (mmHg): ")
	if err != nil {
		return err
	}
	rawDiastolic, err := env.Prompt.Line("Enter your diastolic pressure (mmHg): ")
	if err != nil {
		return err
	}

	a, err := ParseReading(rawSystolic, rawDiastolic)
	if err != nil {
		fmt.Fprintln(env.Out, Message(err))
		env.Log.Info("reading rejected", "reason", err)
		return fmt.Errorf("%w: %w", app.ErrRejected, err)
	}

	Print(env, a)

	run := &core.BloodPressureRun{
		RunMeta:              env.Session.Meta(),
		Systolic:             a.Systolic,
		Diastolic:            a.Diastolic,
		PulsePressure:        a.PulsePressure,
		MeanArterialPressure: a.MeanArterialPressure,
		PulsePressureHigh:    a.PulsePressureHigh(),
		MAPLow:               a.MAPLow(),
	}
	if err := env.Store.RecordBloodPressure(run); err != nil {
		env.Log.Error("Failed to record blood pressure run", "error", err)
	}
	return nil
}

// Print writes the pulse pressure and MAP evaluation.
func Print(env *app.Env, a Assessment) {
	w := env.Out
	if a.PulsePressureHigh() {
		fmt.Fprintf(w, "Your pulse pressure is high: %.2f mmHg\n", a.PulsePressure)
	} else {
		fmt.Fprintf(w, "Your pulse pressure is normal: %.2f mmHg\n", a.PulsePressure)
	}

	fmt.Fprintf(w, "Your mean arterial pressure is: %.2f mmHg\n", a.MeanArterialPressure)
	if a.MAPLow() {
		fmt.Fprintln(w, "You should seek medical assistance.")
	} else {
		fmt.Fprintln(w, "Your mean arterial pressure is within acceptable limits.")
	}
}
