package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	arrivals   int
	departures int
}

func (s *recordingService) ProcessArrival(context.Context)   { s.arrivals++ }
func (s *recordingService) ProcessDeparture(context.Context) { s.departures++ }

func runShell(t *testing.T, input string) (*recordingService, string) {
	t.Helper()
	svc := &recordingService{}
	var out strings.Builder
	sh := New(svc, NewInputReader(strings.NewReader(input)), NewReporter(&out), zerolog.Nop())
	sh.Run(context.Background())
	return svc, out.String()
}

func TestShellRun(t *testing.T) {
	t.Run("dispatches arrival then exits", func(t *testing.T) {
		svc, out := runShell(t, "1\n3\n")
		assert.Equal(t, 1, svc.arrivals)
		assert.Equal(t, 0, svc.departures)
		assert.Contains(t, out, "Welcome to the Parking Garage!")
		assert.Contains(t, out, "1 New Vehicle Entering - Allocate Parking Space")
		assert.Contains(t, out, "Exiting from the system!")
	})

	t.Run("dispatches departure", func(t *testing.T) {
		svc, _ := runShell(t, "2\n3\n")
		assert.Equal(t, 0, svc.arrivals)
		assert.Equal(t, 1, svc.departures)
	})

	t.Run("unsupported option reprints the menu", func(t *testing.T) {
		svc, out := runShell(t, "5\n3\n")
		assert.Equal(t, 0, svc.arrivals)
		assert.Equal(t, 0, svc.departures)
		assert.Contains(t, out, "Unsupported option. Please enter a number corresponding to the provided menu")
	})

	t.Run("exhausted input stops the loop", func(t *testing.T) {
		svc, out := runShell(t, "")
		assert.Equal(t, 0, svc.arrivals)
		assert.Contains(t, out, "Exiting from the system!")
	})

	t.Run("cancelled context stops before the next prompt", func(t *testing.T) {
		svc := &recordingService{}
		var out strings.Builder
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		New(svc, NewInputReader(strings.NewReader("1\n")), NewReporter(&out), zerolog.Nop()).Run(ctx)
		assert.Equal(t, 0, svc.arrivals)
	})
}

func TestInputReader(t *testing.T) {
	t.Run("selection parses a trimmed number", func(t *testing.T) {
		in := NewInputReader(strings.NewReader("  2  \n"))
		assert.Equal(t, 2, in.ReadSelection())
	})

	t.Run("selection rejects non-numeric input", func(t *testing.T) {
		in := NewInputReader(strings.NewReader("abc\n"))
		assert.Equal(t, -1, in.ReadSelection())
		assert.False(t, in.Closed())
	})

	t.Run("selection reports exhausted input", func(t *testing.T) {
		in := NewInputReader(strings.NewReader(""))
		assert.Equal(t, -1, in.ReadSelection())
		assert.True(t, in.Closed())
	})

	t.Run("registration trims whitespace", func(t *testing.T) {
		in := NewInputReader(strings.NewReader("  ABCDEF  \n"))
		reg, err := in.ReadRegistration()
		require.NoError(t, err)
		assert.Equal(t, "ABCDEF", reg)
	})

	t.Run("blank registration fails", func(t *testing.T) {
		in := NewInputReader(strings.NewReader("   \n"))
		_, err := in.ReadRegistration()
		assert.Error(t, err)
	})
}
