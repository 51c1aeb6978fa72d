package report

import (
	"fmt"
	"io"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/formatting"
)

const reportWidth = 60

// WriteText prints the console version of a review.
func WriteText(w io.Writer, r Review) error {
	block, err := r.YAML()
	if err != nil {
		return err
	}
	out := r.Output

	fmt.Fprintln(w, formatting.Separator(reportWidth))
	fmt.Fprintln(w, "KTBB DAILY MARKET REVIEW")
	fmt.Fprintln(w, formatting.Separator(reportWidth))
	if r.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", r.RunID)
	}

	fmt.Fprintln(w, "\nDaily Levels")
	fmt.Fprintf(w, "  Daily Resistance:  %s\n", formatting.Price(out.DailyResistance))
	fmt.Fprintf(w, "  Breakout Trigger:  %s\n", formatting.Price(out.BreakoutTrigger))
	fmt.Fprintf(w, "  Breakdown Trigger: %s\n", formatting.Price(out.BreakdownTrigger))
	fmt.Fprintf(w, "  Daily Support:     %s\n", formatting.Price(out.DailySupport))

	fmt.Fprintln(w, "\n30m Opening Range")
	fmt.Fprintf(w, "  High: %s\n", formatting.Level(r.Input.Range30.High))
	fmt.Fprintf(w, "  Low:  %s\n", formatting.Level(r.Input.Range30.Low))

	fmt.Fprintln(w, "\nHTF Shelves")
	writeShelves(w, "Resistance", out.HTFResistance)
	writeShelves(w, "Support", out.HTFSupport)

	if r.FallbackUsed {
		fmt.Fprintln(w, "\n⚠️  Selected shelves crossed; band widened to the outermost HTF levels.")
	}
	if r.Warning != "" {
		fmt.Fprintf(w, "\n⚠️  %s\n", r.Warning)
	}

	fmt.Fprintln(w, "\nYAML")
	fmt.Fprintln(w, formatting.Separator(reportWidth))
	fmt.Fprint(w, block)
	_, err = fmt.Fprintln(w, formatting.Separator(reportWidth))
	return err
}

func writeShelves(w io.Writer, title string, pair types.ShelfPair) {
	fmt.Fprintf(w, "  %s:\n", title)
	for _, s := range pair.List() {
		marker := ""
		if s.Primary {
			marker = "  ★ primary"
		}
		fmt.Fprintf(w, "    %s @ %-10s strength %s%s\n", s.Timeframe, formatting.Level(s.Level), formatting.Strength(s.Strength), marker)
	}
}
