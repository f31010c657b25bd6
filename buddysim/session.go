package buddysim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/QuangTung97/buddyblock/allocator"
	"github.com/cockroachdb/errors"
)

// ErrUnknownCommand is returned by Exec for a command it does not know
var ErrUnknownCommand = errors.New("buddysim: unknown command")

// Session drives one allocator and prints the outcome of every operation
type Session struct {
	alloc    *allocator.Allocator
	out      io.Writer
	renderer *renderer
}

// NewSession creates a session, colored forces ANSI colors in status output.
// Use ShouldColor to decide it from the destination.
func NewSession(alloc *allocator.Allocator, out io.Writer, colored bool) *Session {
	return &Session{
		alloc:    alloc,
		out:      out,
		renderer: newRenderer(colored),
	}
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// Allocate ...
func (s *Session) Allocate(size int) error {
	block, ok, err := s.alloc.Allocate(size)
	if err != nil {
		return err
	}
	if !ok {
		s.printf("Failed to allocate memory\n")
		return nil
	}
	s.printf("Allocated block ID: %d (size: %d, offset: %d)\n", block.Handle, block.Size, block.Offset)
	return nil
}

// Free ...
func (s *Session) Free(h allocator.Handle) {
	if s.alloc.Free(h) {
		s.printf("Successfully freed block %d\n", h)
		return
	}
	s.printf("Failed to free block %d\n", h)
}

// Status ...
func (s *Session) Status() {
	s.renderer.writeStatus(s.out, s.alloc.Snapshot())
}

// Stats ...
func (s *Session) Stats() {
	s.renderer.writeStats(s.out, s.alloc.Stats())
}

func parseIntArg(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.Newf("%s: expected 1 argument, got %d", cmd, len(args))
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrapf(err, "%s", cmd)
	}
	return v, nil
}

// Exec runs one script line: alloc <size>, free <handle>, status or stats
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "alloc":
		size, err := parseIntArg(cmd, args)
		if err != nil {
			return err
		}
		return s.Allocate(size)

	case "free":
		h, err := parseIntArg(cmd, args)
		if err != nil {
			return err
		}
		s.Free(allocator.Handle(h))
		return nil

	case "status", "stats":
		if len(args) != 0 {
			return errors.Newf("%s: expected no argument, got %d", cmd, len(args))
		}
		if cmd == "status" {
			s.Status()
		} else {
			s.Stats()
		}
		return nil

	default:
		return errors.Wrapf(ErrUnknownCommand, "%q", cmd)
	}
}

// RunScript executes every line of r, stopping at the first error
func (s *Session) RunScript(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := s.Exec(scanner.Text()); err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
	}
	return scanner.Err()
}
