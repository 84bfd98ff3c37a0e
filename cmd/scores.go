package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

type ScoresCmd struct {
	JSON   bool     `short:"j" help:"Output as JSON"`
	Phrase []string `arg:"" help:"Time phrase to report on (e.g. 'past 7 days')"`
}

func (c *ScoresCmd) Run(app *App) error {
	phrase := joinWords(c.Phrase)

	rng, ok := app.Resolver().Parse(phrase)
	if !ok {
		return fmt.Errorf("no date range recognized in %q", phrase)
	}

	scores := app.Store.Scores(rng.Start, rng.End)

	if c.JSON {
		type scoreJSON struct {
			Label string `json:"label"`
			Score int    `json:"score"`
		}
		out := struct {
			rangeJSON
			Scores []scoreJSON `json:"scores"`
		}{rangeJSON: toRangeJSON(rng)}
		for _, s := range scores {
			out.Scores = append(out.Scores, scoreJSON{Label: s.Label, Score: s.Value})
		}
		return printJSON(out)
	}

	fmt.Printf("Scores %s .. %s\n", rng.Start.Format(isoDate), rng.End.Format(isoDate))

	if len(scores) == 0 {
		fmt.Println("No scores in range.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tSCORE")
	fmt.Fprintln(w, "---\t-----")
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%d\n", s.Label, s.Value)
	}
	return w.Flush()
}
