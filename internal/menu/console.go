package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInputClosed is returned when the console has no more lines to read.
var ErrInputClosed = fmt.Errorf("input closed: %w", io.EOF)

// Console reads one line per prompt and writes menu output.
// Menus and field prompts of a session must share one Console so that no
// buffered input is lost between them.
type Console struct {
	in      io.Reader
	out     io.Writer
	scanner *bufio.Scanner
}

// NewConsole creates a console over the given reader and writer.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// Stdio returns a console bound to the process standard streams.
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// Println writes a line of output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// ReadLine prints prompt and returns the next input line without its line
// terminator.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(c.scanner.Text(), "\r"), nil
}

// ReadSecret is ReadLine without echo when the input is a terminal.
func (c *Console) ReadSecret(prompt string) (string, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.ReadLine(prompt)
	}

	fmt.Fprint(c.out, prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return string(secret), nil
}
