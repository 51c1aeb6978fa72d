package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/database"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/handlers/input"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/report"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/strategy/dmr"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/formatting"
)

// Journal is the subset of the run journal the console uses.
type Journal interface {
	LogRun(ctx context.Context, run database.Run) error
	RecentRuns(ctx context.Context, limit int) ([]database.Run, error)
}

// Console drives a review over a line-oriented reader and writer.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	engine  *dmr.Engine
	journal Journal
}

func NewConsole(in io.Reader, out io.Writer, journal Journal) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		engine:  dmr.NewEngine(dmr.PlaceholderFactors),
		journal: journal,
	}
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptInput asks for every field in form order, repeating a prompt until
// the answer parses as a finite number.
func (c *Console) PromptInput() (types.EngineInput, error) {
	var in types.EngineInput

	for _, group := range input.Groups() {
		fmt.Fprintf(c.out, "\n--- %s ---\n", group.Name)
		for _, f := range group.Fields {
			for {
				fmt.Fprintf(c.out, "%s: ", f.Label)
				line, err := c.readLine()
				if err != nil {
					return types.EngineInput{}, fmt.Errorf("reading %s: %w", f.Name, err)
				}
				v, reason := input.ParseValue(line)
				if reason != "" {
					fmt.Fprintf(c.out, "❌ %s %s. Try again.\n", f.Label, reason)
					continue
				}
				f.Set(&in, v)
				break
			}
		}
	}
	return in, nil
}

// Review computes, journals and prints one review.
func (c *Console) Review(ctx context.Context, in types.EngineInput) (report.Review, error) {
	res := c.engine.Run(in)
	run := database.NewRun(in, res.Output)
	rev := report.NewReview(run.ID.String(), in, res)

	if c.journal != nil {
		if err := c.journal.LogRun(ctx, run); err != nil {
			fmt.Fprintf(c.out, "⚠️  Could not save run to journal: %v\n", err)
		}
	}

	fmt.Fprintln(c.out)
	return rev, report.WriteText(c.out, rev)
}

// AskYesNo returns true for y/yes, false for n/no or an empty answer.
func (c *Console) AskYesNo(question string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s (y/n): ", question)
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no", "":
			return false, nil
		default:
			fmt.Fprintln(c.out, "Please answer y or n.")
		}
	}
}

// RunReviews prompts for reviews until the user declines another.
func (c *Console) RunReviews(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out, "\n"+formatting.Separator(60))
		fmt.Fprintln(c.out, "Daily Market Review – Input")
		fmt.Fprintln(c.out, formatting.Separator(60))

		in, err := c.PromptInput()
		if err != nil {
			return err
		}
		if _, err := c.Review(ctx, in); err != nil {
			return err
		}

		again, err := c.AskYesNo("\nRun another review?")
		if err != nil || !again {
			return err
		}
	}
}

// ReviewFile computes a review from a flat YAML input file.
func (c *Console) ReviewFile(ctx context.Context) error {
	fmt.Fprint(c.out, "Path to YAML input file: ")
	path, err := c.readLine()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return nil
	}
	in, err := input.FromYAML(data)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return nil
	}

	_, err = c.Review(ctx, in)
	return err
}

// ShowRecentRuns prints the latest journaled reviews.
func (c *Console) ShowRecentRuns(ctx context.Context, limit int) error {
	if c.journal == nil {
		fmt.Fprintln(c.out, "Run journal is disabled. Enable it under Configure Settings.")
		return nil
	}

	runs, err := c.journal.RecentRuns(ctx, limit)
	if err != nil {
		fmt.Fprintf(c.out, "❌ %v\n", err)
		return nil
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(c.out, "\n%-20s %10s %10s %10s %10s\n", "Time (UTC)", "Support", "Breakdown", "Breakout", "Resistance")
	for _, run := range runs {
		out := run.Output
		fmt.Fprintf(c.out, "%-20s %10s %10s %10s %10s\n",
			run.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			formatting.Price(out.DailySupport),
			formatting.Price(out.BreakdownTrigger),
			formatting.Price(out.BreakoutTrigger),
			formatting.Price(out.DailyResistance))
	}
	return nil
}

// ShowMainMenu prints the menu and returns the selected option.
func (c *Console) ShowMainMenu() (int, error) {
	fmt.Fprintln(c.out, "\n--- KTBB Daily Market Review ---")
	fmt.Fprintln(c.out, "1. Run Daily Market Review")
	fmt.Fprintln(c.out, "2. Review From YAML File")
	fmt.Fprintln(c.out, "3. Recent Runs")
	fmt.Fprintln(c.out, "4. Configure Settings")
	fmt.Fprintln(c.out, "5. Exit")
	fmt.Fprint(c.out, "Enter choice (1-5): ")

	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	var choice int
	if _, err := fmt.Sscan(line, &choice); err != nil || choice < 1 || choice > 5 {
		fmt.Fprintln(c.out, "Invalid choice. Try again.")
		return 0, nil
	}
	return choice, nil
}

// Reader exposes the console's input so nested menus share its buffer.
func (c *Console) Reader() io.Reader { return c.in }

func (c *Console) Writer() io.Writer { return c.out }
