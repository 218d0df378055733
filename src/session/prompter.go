package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/store"
	"go.uber.org/zap"
)

const (
	namePrompt     = "Enter the creature's name: "
	continuePrompt = "Search another? (y/n): "
	farewell       = "Thanks for using the Pokedex. Goodbye!"
)

type Lookuper interface {
	Lookup(ctx context.Context, name string) (pokedex.Record, error)
	CardPath(record pokedex.Record) string
}

type state int

const (
	awaitName state = iota
	lookup
	awaitContinue
	terminated
)

const maxLineSize = 1024 * 1024

// Prompter drives the interactive loop: read a name, look it up, ask whether to
// continue.
type Prompter struct {
	lookuper      Lookuper
	in            io.Reader
	out           io.Writer
	exitOnInvalid bool
	sugar         *zap.SugaredLogger
}

func NewPrompter(sugar *zap.SugaredLogger, lookuper Lookuper, in io.Reader, out io.Writer, exitOnInvalid bool) *Prompter {
	return &Prompter{
		lookuper:      lookuper,
		in:            in,
		out:           out,
		exitOnInvalid: exitOnInvalid,
		sugar:         sugar,
	}
}

// lineReader scans input on its own goroutine so a prompt can be abandoned
// when the context is cancelled.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error
}

func readLines(in io.Reader) *lineReader {
	r := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-r.done:
				return
			}
		}
		r.err = scanner.Err()
	}()
	return r
}

func (r *lineReader) stop() {
	close(r.done)
}

// Run returns nil when the user declines to continue or input ends. A
// *ValidationError means the session was aborted on a malformed name; a
// *pokedex.RenderError is fatal. Cancelling ctx abandons any pending prompt
// and returns ctx.Err().
func (p *Prompter) Run(ctx context.Context) error {
	reader := readLines(p.in)
	defer reader.stop()
	current := awaitName
	var name string
	for current != terminated {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch current {
		case awaitName:
			line, ok, err := p.ask(ctx, reader, namePrompt)
			if err != nil {
				return err
			}
			if !ok {
				p.say(farewell)
				return nil
			}
			normalized, err := NormalizeName(line)
			if err != nil {
				vErr, _ := AsValidationError(err)
				p.say(vErr.Reason)
				if isEmpty(err) || !p.exitOnInvalid {
					continue
				}
				return err
			}
			name = normalized
			current = lookup
		case lookup:
			record, err := p.lookuper.Lookup(ctx, name)
			if err != nil {
				if rErr, ok := pokedex.AsRenderError(err); ok {
					p.say(fmt.Sprintf("Could not display the card: %s", rErr.Err))
					return err
				}
				p.say(describe(err))
			} else {
				p.say(fmt.Sprintf("%s saved. Card written to %s", record.Name, p.lookuper.CardPath(record)))
			}
			current = awaitContinue
		case awaitContinue:
			line, ok, err := p.ask(ctx, reader, continuePrompt)
			if err != nil {
				return err
			}
			if ok && isAffirmative(line) {
				current = awaitName
				continue
			}
			p.say(farewell)
			current = terminated
		}
	}
	return nil
}

// ask reports ok=false on end of input. A read failure or cancellation is an error.
func (p *Prompter) ask(ctx context.Context, reader *lineReader, prompt string) (string, bool, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false, ctx.Err()
	case line, ok := <-reader.lines:
		if ok {
			return line, true, nil
		}
		fmt.Fprintln(p.out)
		if reader.err != nil {
			p.sugar.Errorf("Failed to read input: %s", reader.err)
			return "", false, fmt.Errorf("reading input: %w", reader.err)
		}
		return "", false, nil
	}
}

func (p *Prompter) say(message string) {
	fmt.Fprintln(p.out, message)
}

// isAffirmative accepts "y" or "s", case-insensitively.
func isAffirmative(line string) bool {
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "s"
}

func describe(err error) string {
	if imgErr, ok := pokeapi.AsImageError(err); ok {
		return fmt.Sprintf("Could not load the image %s: %s", imgErr.URL, imgErr.Err)
	}
	if httpErr, ok := pokeapi.AsHTTPError(err); ok {
		return fmt.Sprintf("Something went wrong. Try again.\nError: %d", httpErr.StatusCode)
	}
	if exErr, ok := pokedex.AsExtractionError(err); ok {
		return fmt.Sprintf("The catalog entry is incomplete: %s", exErr.Field)
	}
	if ioErr, ok := store.AsIOError(err); ok {
		return fmt.Sprintf("Could not save the record to %s: %s", ioErr.Path, ioErr.Err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The catalog did not answer in time. Try again."
	}
	return fmt.Sprintf("Lookup failed: %s", err)
}
