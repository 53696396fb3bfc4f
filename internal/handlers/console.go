package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrInputClosed is returned when the console input has no more lines.
var ErrInputClosed = errors.New("input closed")

// ErrInputFailed is returned when the console input can no longer be read,
// for example after a line longer than MaxLineSize.
var ErrInputFailed = errors.New("input failed")

// MaxLineSize is the longest input line the console accepts.
const MaxLineSize = 1 << 20

// Action is one menu entry. It returns an error only when the session must stop.
type Action func(ctx context.Context, c *Console) error

// Console reads prompted lines from in and writes messages to out.
type Console struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan string
	err   error // read error, set before lines is closed
}

// NewConsole creates a new Console.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func (c *Console) start() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			c.err = fmt.Errorf("%w: %w", ErrInputFailed, err)
		}
	}()
}

// ReadLine prints prompt and returns the next trimmed input line.
// It returns ErrInputClosed at end of input, ErrInputFailed when reading fails
// and ctx.Err() when ctx is done.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	c.once.Do(c.start)
	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return "", c.err
			}
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// ReadInt prints prompt and parses the next input line as an integer.
func (c *Console) ReadInt(ctx context.Context, prompt string) (int64, error) {
	line, err := c.ReadLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(line, 10, 64)
}

// ReadIntDefault is ReadInt where an empty line yields def.
func (c *Console) ReadIntDefault(ctx context.Context, prompt string, def int64) (int64, error) {
	line, err := c.ReadLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}
	return strconv.ParseInt(line, 10, 64)
}

// Println writes a line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes a formatted line.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}

// isStop reports whether err ends the session rather than the current action.
func isStop(err error) bool {
	return errors.Is(err, ErrInputClosed) || errors.Is(err, ErrInputFailed) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// readInts reads one integer per prompt. A parse failure prints "Invalid input."
// and reports ok=false with a nil error.
func readInts(ctx context.Context, c *Console, prompts ...string) (values []int64, ok bool, err error) {
	values = make([]int64, 0, len(prompts))
	for _, prompt := range prompts {
		v, err := c.ReadInt(ctx, prompt)
		if isStop(err) {
			return nil, false, err
		}
		if err != nil {
			c.Println("Invalid input.")
			return nil, false, nil
		}
		values = append(values, v)
	}
	return values, true, nil
}
