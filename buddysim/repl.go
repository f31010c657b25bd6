package buddysim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/QuangTung97/buddyblock/allocator"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const menu = `
Buddy System Memory Allocator
1. Allocate memory
2. Free memory
3. Show memory status
4. Exit
Enter your choice: `

const (
	choiceAllocate = 1
	choiceFree     = 2
	choiceStatus   = 3
	choiceExit     = 4
)

type wordReader struct {
	scanner *bufio.Scanner
}

func newWordReader(r io.Reader) *wordReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &wordReader{scanner: scanner}
}

// next returns io.EOF once the input is exhausted, or the wrapped read error
func (w *wordReader) next() (string, error) {
	if !w.scanner.Scan() {
		if err := w.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", io.EOF
	}
	return w.scanner.Text(), nil
}

// NewAllocator ...
func (c Config) NewAllocator(logger logrus.FieldLogger) (*allocator.Allocator, error) {
	return allocator.New(allocator.Config{
		Capacity: c.Capacity,
		Logger:   logger,
	})
}

// RunREPL runs the interactive menu until the user exits or the input ends.
// A failing reader stops the loop with its error.
func RunREPL(in io.Reader, out io.Writer, conf Config, logger logrus.FieldLogger) error {
	words := newWordReader(in)
	_, _ = fmt.Fprintln(out, "Welcome to Buddy System Memory Allocator")

	if conf.Capacity == 0 {
		_, _ = fmt.Fprint(out, "Enter total memory size (must be a power of 2): ")
		word, err := words.next()
		if err != nil {
			return err
		}
		capacity, err := strconv.Atoi(word)
		if err != nil {
			return errors.Wrap(err, "capacity")
		}
		conf.Capacity = capacity
	}

	alloc, err := conf.NewAllocator(logger)
	if err != nil {
		return err
	}
	s := NewSession(alloc, out, ShouldColor(out, conf.Color))

	for {
		_, _ = fmt.Fprint(out, menu)

		word, err := words.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(word)
		if err != nil {
			_, _ = fmt.Fprintln(out, "Invalid choice")
			continue
		}

		switch choice {
		case choiceAllocate:
			_, _ = fmt.Fprint(out, "Enter size to allocate: ")
			word, err := words.next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			size, err := strconv.Atoi(word)
			if err == nil {
				err = s.Allocate(size)
			}
			if err != nil {
				_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			}

		case choiceFree:
			_, _ = fmt.Fprint(out, "Enter block ID to free: ")
			word, err := words.next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			h, err := strconv.Atoi(word)
			if err != nil {
				_, _ = fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			s.Free(allocator.Handle(h))

		case choiceStatus:
			s.Status()
			_, _ = fmt.Fprintln(out)

		case choiceExit:
			_, _ = fmt.Fprintln(out, "Exiting...")
			return nil

		default:
			_, _ = fmt.Fprintln(out, "Invalid choice")
		}
	}
}
