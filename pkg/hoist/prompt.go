package hoist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Chooser resolves a dependency declared with several distinct sources.
// Choose returns the 1-based index of the accepted option, or 0 to skip the
// dependency. An error aborts the run.
type Chooser interface {
	Choose(name string, options []Source) (int, error)
}

// ChooserFunc adapts a function to the [Chooser] interface.
type ChooserFunc func(name string, options []Source) (int, error)

// Choose calls f.
func (f ChooserFunc) Choose(name string, options []Source) (int, error) {
	return f(name, options)
}

// SkipChooser skips every conflict. It is used for non-interactive runs.
type SkipChooser struct{}

// Choose always returns 0.
func (SkipChooser) Choose(string, []Source) (int, error) {
	return 0, nil
}

// Prompter asks on out and reads one line of input per conflict.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a prompter reading answers from in. The reader is
// buffered once, so successive prompts share input.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Choose prints the menu for name and reads the answer. End of input counts
// as an empty answer.
func (p *Prompter) Choose(name string, options []Source) (int, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Dependency `%s` has conflicting source specifications:\n", name)
	for i, src := range options {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, src)
	}
	b.WriteString("  0) Skip hoisting this dependency\n")
	fmt.Fprintf(&b, "Please choose an option for `%s` [0]: ", name)
	if _, err := io.WriteString(p.out, b.String()); err != nil {
		return 0, fmt.Errorf("write prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("read choice for %s: %w", name, err)
	}
	return ParseChoice(line, len(options)), nil
}

// ParseChoice interprets an answer to a menu of n options. Empty,
// non-numeric and out-of-range answers yield 0.
func ParseChoice(input string, n int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 0 || choice > n {
		return 0
	}
	return choice
}
