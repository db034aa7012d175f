package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ledger/internal/core"
)

// errQuit ends the session: input reached EOF or the context was cancelled.
var errQuit = errors.New("input closed")

// maxLineSize bounds one line of input. Longer lines end the session with
// a read error.
const maxLineSize = 1 << 20

// lineReader feeds input lines through a channel so that a read can be
// abandoned when the context is cancelled.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go lr.run(r)
	return lr
}

func (lr *lineReader) run(r io.Reader) {
	defer close(lr.lines)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		select {
		case lr.lines <- sc.Text():
		case <-lr.done:
			return
		}
	}
	lr.err = sc.Err()
}

// Close stops delivering lines. A read blocked in the underlying reader
// is left to finish on its own.
func (lr *lineReader) Close() {
	select {
	case <-lr.done:
	default:
		close(lr.done)
	}
}

// ask prints prompt and waits for one line of input, trimmed.
func (m *Menu) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	select {
	case <-ctx.Done():
		return "", errQuit
	case line, ok := <-m.in.lines:
		if !ok {
			if m.in.err != nil {
				m.logger.Warn("Reading input failed", "error", m.in.err)
				fmt.Fprintf(m.out, "\n\nCould not read input: %v\n", m.in.err)
			}
			return "", errQuit
		}
		return strings.TrimSpace(line), nil
	}
}

func (m *Menu) pause(ctx context.Context) error {
	_, err := m.ask(ctx, "\nPress Enter to continue...")
	return err
}

// askDate re-prompts until a YYYY-MM-DD date is entered. With allowToday
// a blank line means the current date.
func (m *Menu) askDate(ctx context.Context, prompt string, allowToday bool) (core.Date, error) {
	for {
		line, err := m.ask(ctx, prompt)
		if err != nil {
			return core.Date{}, err
		}
		if line == "" && allowToday {
			return m.today(), nil
		}
		d, err := core.ParseDate(line)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(m.out, "Invalid date format. Please use YYYY-MM-DD")
	}
}

// askAmount re-prompts until a positive amount is entered.
func (m *Menu) askAmount(ctx context.Context, prompt string) (core.Money, error) {
	for {
		line, err := m.ask(ctx, prompt)
		if err != nil {
			return core.Money{}, err
		}
		amount, err := core.ParseAmount(line)
		if err == nil {
			return amount, nil
		}
		fmt.Fprintln(m.out, amountError(line))
	}
}

func amountError(line string) string {
	if f, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", "."), 64); err == nil && f <= 0 {
		return "Amount must be greater than zero"
	}
	return "Invalid amount. Please enter a number"
}

// askChoice lists options and re-prompts until a valid 1-based index is
// entered. It returns the 0-based index.
func (m *Menu) askChoice(ctx context.Context, title string, options []string) (int, error) {
	fmt.Fprintf(m.out, "\nSelect %s:\n", title)
	for i, opt := range options {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, opt)
	}

	prompt := fmt.Sprintf("\nEnter choice (1-%d): ", len(options))
	for {
		line, err := m.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid input. Please enter a number")
			continue
		}
		if n < 1 || n > len(options) {
			fmt.Fprintf(m.out, "Invalid choice. Please select 1-%d\n", len(options))
			continue
		}
		return n - 1, nil
	}
}

func (m *Menu) askCategory(ctx context.Context) (core.Category, error) {
	cats := core.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	i, err := m.askChoice(ctx, "Category", names)
	if err != nil {
		return "", err
	}
	return cats[i], nil
}

func (m *Menu) askPaymentMethod(ctx context.Context) (core.PaymentMethod, error) {
	methods := core.PaymentMethods()
	names := make([]string, len(methods))
	for i, p := range methods {
		names[i] = p.String()
	}
	i, err := m.askChoice(ctx, "Payment Method", names)
	if err != nil {
		return "", err
	}
	return methods[i], nil
}

// askYes reads a y/n answer; anything but y or yes is no.
func (m *Menu) askYes(ctx context.Context, prompt string) (bool, error) {
	line, err := m.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
