package hunt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Kavithma17/Treasure-Hunt/pkg/domain"
)

// Runner plays a hunt interactively over the provided IO. It exists
// for local testing of challenge content and for terminal demos; the
// HTTP adapter is the real serving surface.
type Runner struct {
	Input  io.Reader
	Output io.Writer

	// Headless suppresses banners and prompts, leaving only challenge
	// text and verdicts. Useful when driving the runner from a test.
	Headless bool
}

// NewRunner creates a Runner. The caller must set Input and Output
// (typically os.Stdin and os.Stdout).
func NewRunner() *Runner {
	return &Runner{}
}

// Run walks one session through the given slots until the hunt is
// complete or input ends. Typing "skip" requests an alternate for the
// current challenge; "exit" or "quit" abandons the run.
func (r *Runner) Run(ctx context.Context, h *Hunt, slots []string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	out := r.Output

	session, err := h.Start(ctx, slots, "")
	if err != nil {
		return err
	}

	if !r.Headless {
		fmt.Fprintf(out, "--- Treasure Hunt (%d challenges) ---\n", len(slots))
	}

	for {
		info, err := h.Resume(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("session lost: %w", err)
		}
		if info.Completed {
			break
		}
		index := info.CurrentIndex

		view, err := h.Reveal(ctx, session.ID, index)
		if err != nil {
			return fmt.Errorf("reveal: %w", err)
		}
		printChallenge(out, view, info.TotalSlots)

		if !r.Headless {
			fmt.Fprint(out, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		answer := strings.TrimSpace(text)

		switch answer {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return nil
		case "skip":
			swapped, err := h.Substitute(ctx, session.ID, index)
			switch {
			case errors.Is(err, domain.ErrNoAlternate):
				fmt.Fprintln(out, "No alternate available, the challenge stays.")
			case err != nil:
				return fmt.Errorf("substitute: %w", err)
			case swapped.Ref == view.Ref:
				fmt.Fprintln(out, "This challenge type cannot be swapped.")
			}
			continue
		case "":
			continue
		}

		result, err := h.Verify(ctx, session.ID, view.Ref, index, answer)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}

		if result.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintln(out, "Not quite, try again.")
		}
		if result.Completed {
			fmt.Fprintf(out, "Hunt complete in %s.\n", result.CompletionElapsed)
			return nil
		}
	}
	return nil
}

func printChallenge(out io.Writer, view domain.SafeView, total int) {
	fmt.Fprintf(out, "\n[%d/%d] %s\n", view.Position, total, view.Prompt)
	if view.Clue != "" {
		fmt.Fprintf(out, "Clue: %s\n", view.Clue)
	}
	for _, opt := range view.Options {
		fmt.Fprintf(out, "  %s) %s\n", opt.ID, opt.Text)
	}
	if view.Photo != nil {
		fmt.Fprintf(out, "Photo: %s\n", view.Photo.ImageURL)
	}
}
