package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrExitMenu makes the running menu return without an error.
var ErrExitMenu = errors.New("exit menu")

// Ctx carries the input, output and per-session values of one console run.
type Ctx struct {
	in     *bufio.Reader
	out    io.Writer
	locals map[string]interface{}

	// Action is the label of the menu item being handled.
	Action string
}

func NewCtx(in io.Reader, out io.Writer) *Ctx {
	return &Ctx{
		in:     bufio.NewReader(in),
		out:    out,
		locals: make(map[string]interface{}),
	}
}

// Prompt prints label and reads one line without its line ending.
// It returns io.EOF once input is exhausted.
func (c *Ctx) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(c.out)
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Ctx) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Ctx) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

func (c *Ctx) Out() io.Writer {
	return c.out
}

// Locals reads a value, or stores one when value is given. Storing nil
// removes the key.
func (c *Ctx) Locals(key string, value ...interface{}) interface{} {
	if len(value) == 0 {
		return c.locals[key]
	}
	if value[0] == nil {
		delete(c.locals, key)
		return nil
	}
	c.locals[key] = value[0]
	return value[0]
}

type Handler func(c *Ctx) error

type Middleware func(next Handler) Handler
