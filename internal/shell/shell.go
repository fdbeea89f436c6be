// Package shell implements the interactive console for the garage operator.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Service is the lifecycle workflow the shell drives.
type Service interface {
	ProcessArrival(ctx context.Context)
	ProcessDeparture(ctx context.Context)
}

// InputReader reads operator input line by line.
type InputReader struct {
	scanner *bufio.Scanner
	closed  bool
}

// NewInputReader constructs an InputReader over r.
func NewInputReader(r io.Reader) *InputReader {
	return &InputReader{scanner: bufio.NewScanner(r)}
}

// ReadSelection returns the typed menu number, or -1 when the line is not a
// number or input is exhausted.
func (in *InputReader) ReadSelection() int {
	if !in.scanner.Scan() {
		in.closed = true
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(in.scanner.Text()))
	if err != nil {
		return -1
	}
	return n
}

// ReadRegistration returns the typed registration number, failing on blank
// input or exhausted input.
func (in *InputReader) ReadRegistration() (string, error) {
	if !in.scanner.Scan() {
		in.closed = true
		return "", fmt.Errorf("no input available")
	}
	reg := strings.TrimSpace(in.scanner.Text())
	if reg == "" {
		return "", fmt.Errorf("registration number is blank")
	}
	return reg, nil
}

// Closed reports whether the underlying input has been exhausted.
func (in *InputReader) Closed() bool {
	return in.closed
}

// Reporter writes operator-facing messages to w.
type Reporter struct {
	w io.Writer
}

// NewReporter constructs a Reporter over w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes one message line.
func (r *Reporter) Report(msg string) {
	fmt.Fprintln(r.w, msg)
}

// Reportf writes one formatted message line.
func (r *Reporter) Reportf(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Shell is the operator menu loop.
type Shell struct {
	svc   Service
	input *InputReader
	out   *Reporter
	log   zerolog.Logger
}

// New constructs a Shell.
func New(svc Service, input *InputReader, out *Reporter, log zerolog.Logger) *Shell {
	return &Shell{svc: svc, input: input, out: out, log: log}
}

// Run shows the menu and dispatches options until the operator shuts the
// system down, input ends, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	s.log.Info().Msg("parking system initialized")
	s.out.Report("Welcome to the Parking Garage!")

	for {
		select {
		case <-ctx.Done():
			s.out.Report("Exiting from the system!")
			return
		default:
		}

		s.printMenu()
		switch option := s.input.ReadSelection(); option {
		case 1:
			s.svc.ProcessArrival(ctx)
		case 2:
			s.svc.ProcessDeparture(ctx)
		case 3:
			s.out.Report("Exiting from the system!")
			return
		default:
			if s.input.Closed() {
				s.out.Report("Exiting from the system!")
				return
			}
			s.out.Report("Unsupported option. Please enter a number corresponding to the provided menu")
		}
	}
}

func (s *Shell) printMenu() {
	s.out.Report("Please select an option. Simply enter the number to choose an action")
	s.out.Report("1 New Vehicle Entering - Allocate Parking Space")
	s.out.Report("2 Vehicle Exiting - Generate Ticket Price")
	s.out.Report("3 Shutdown System")
}
