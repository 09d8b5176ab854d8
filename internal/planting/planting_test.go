package planting

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T, cfg config.PlantingConfig) Generator {
	t.Helper()
	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	return g
}

func newProgram(t *testing.T) *Program {
	t.Helper()
	p, err := New(config.DefaultPlantingConfig())
	require.NoError(t, err)
	return p
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(1))
	assert.Equal(t, 28, DaysInMonth(2))
	assert.Equal(t, 30, DaysInMonth(9))
	assert.Equal(t, 31, DaysInMonth(10))
	assert.Equal(t, 31, DaysInMonth(12))
	assert.Equal(t, 0, DaysInMonth(0))
	assert.Equal(t, 0, DaysInMonth(13))

	total := 0
	for m := 1; m <= 12; m++ {
		total += DaysInMonth(m)
	}
	assert.Equal(t, 365, total)
}

func TestDate_Advance(t *testing.T) {
	tests := []struct {
		name  string
		start Date
		days  int
		want  Date
	}{
		{"same month", Date{4, 1}, 10, Date{4, 11}},
		{"month end exact", Date{4, 1}, 29, Date{4, 30}},
		{"into next month", Date{4, 1}, 44, Date{5, 15}},
		{"across several months", Date{6, 28}, 44, Date{8, 11}},
		{"february has 28 days", Date{2, 20}, 10, Date{3, 2}},
		{"year end", Date{12, 20}, 11, Date{12, 31}},
		{"past december stops rolling", Date{12, 20}, 60, Date{13, 49}},
		{"zero days", Date{7, 7}, 0, Date{7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Advance(tt.days))
		})
	}
}

func TestDate_Valid(t *testing.T) {
	assert.True(t, Date{2, 28}.Valid())
	assert.False(t, Date{2, 29}.Valid())
	assert.False(t, Date{13, 1}.Valid())
	assert.False(t, Date{5, 0}.Valid())
}

func TestBeforeFrost(t *testing.T) {
	g := newGenerator(t, config.DefaultPlantingConfig())

	assert.True(t, g.BeforeFrost(Date{9, 30}))
	assert.True(t, g.BeforeFrost(Date{1, 1}))
	assert.False(t, g.BeforeFrost(Date{10, 1}))
	assert.False(t, g.BeforeFrost(Date{11, 7}))
	assert.False(t, g.BeforeFrost(Date{13, 5}))
}

func TestGenerate_ReferenceSchedule(t *testing.T) {
	g := newGenerator(t, config.DefaultPlantingConfig())

	sched := g.Generate(Date{4, 1}, 30)
	assert.Equal(t, Schedule{
		{4, 1},
		{5, 15},
		{6, 28},
		{8, 11},
		{9, 24},
	}, sched)
}

func TestGenerate_StartOnFrostIsEmpty(t *testing.T) {
	g := newGenerator(t, config.DefaultPlantingConfig())
	assert.Empty(t, g.Generate(Date{10, 1}, 30))
	assert.Empty(t, g.Generate(Date{12, 31}, 1))
}

func TestGenerate_LongMaturitySingleEntry(t *testing.T) {
	g := newGenerator(t, config.DefaultPlantingConfig())
	assert.Equal(t, Schedule{{1, 1}}, g.Generate(Date{1, 1}, 999))
}

func TestGenerate_AllDatesBeforeFrostAndIncreasing(t *testing.T) {
	g := newGenerator(t, config.DefaultPlantingConfig())

	for _, maturity := range []int{1, 7, 30, 90, 200} {
		sched := g.Generate(Date{3, 15}, maturity)
		require.NotEmpty(t, sched)
		for i, d := range sched {
			assert.True(t, d.Valid(), "date %s", d)
			assert.True(t, g.BeforeFrost(d), "date %s", d)
			if i > 0 {
				assert.True(t, sched[i-1].Before(d))
			}
		}
	}
}

func TestGenerate_CustomFrost(t *testing.T) {
	g := newGenerator(t, config.PlantingConfig{FrostMonth: 6, FrostDay: 15, HarvestBufferDays: 0})
	assert.Equal(t, Schedule{{5, 1}, {6, 1}}, g.Generate(Date{5, 1}, 31))
}

func TestNewGenerator_RejectsFrostOutsideCalendar(t *testing.T) {
	tests := []struct {
		name  string
		month int
		day   int
	}{
		{"month past december", 14, 1},
		{"month thirteen", 13, 1},
		{"month zero", 0, 1},
		{"day zero", 10, 0},
		{"day past month end", 2, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.PlantingConfig{FrostMonth: tt.month, FrostDay: tt.day, HarvestBufferDays: 14}

			_, err := NewGenerator(cfg)
			assert.ErrorIs(t, err, ErrInvalidFrost)

			_, err = New(cfg)
			assert.ErrorIs(t, err, ErrInvalidFrost)
		})
	}
}

func TestGenerate_StopsPastDecember(t *testing.T) {
	g := Generator{Frost: Date{14, 1}, HarvestBuffer: 14}

	done := make(chan Schedule, 1)
	go func() { done <- g.Generate(Date{12, 1}, 30) }()

	select {
	case sched := <-done:
		assert.Equal(t, Schedule{{12, 1}}, sched)
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return for a frost date past december")
	}
}

func TestRun_PrintsSchedule(t *testing.T) {
	var out bytes.Buffer
	env := app.NewEnv(strings.NewReader("Bush beans\n4\n1\n30\n"), &out)

	err := newProgram(t).Run(context.Background(), env)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Planting Schedule for Bush beans")
	assert.Contains(t, text, "Planting Number\tMonth\tDay\n")
	assert.Contains(t, text, "1\t\t4\t1\n")
	assert.Contains(t, text, "5\t\t9\t24\n")
	assert.NotContains(t, text, "6\t\t")
}

func TestRun_ValidatesDayAgainstMonth(t *testing.T) {
	var out bytes.Buffer
	env := app.NewEnv(strings.NewReader("Peas\n2\n30\n28\n0\n60\n"), &out)

	err := newProgram(t).Run(context.Background(), env)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Enter start day (1-28): ")
	assert.Contains(t, text, "Enter a value between 1 and 28.")
	assert.Contains(t, text, "Enter a value between 1 and 999.")
	assert.Contains(t, text, "1\t\t2\t28\n")
}
