package cmd

import (
	"fmt"
)

type RangeCmd struct {
	JSON   bool     `short:"j" help:"Output as JSON"`
	Phrase []string `arg:"" help:"Time phrase to resolve (e.g. 'last week')"`
}

func (c *RangeCmd) Run(app *App) error {
	phrase := joinWords(c.Phrase)

	rng, ok := app.Resolver().Parse(phrase)
	if !ok {
		return fmt.Errorf("no date range recognized in %q", phrase)
	}

	if c.JSON {
		return printJSON(toRangeJSON(rng))
	}

	fmt.Printf("%s .. %s\n", rng.Start.Format(isoDate), rng.End.Format(isoDate))
	return nil
}
