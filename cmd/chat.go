package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

type ChatCmd struct {
	Message []string `arg:"" help:"Message for the advisor"`
}

// Run answers one chat message. When a date range is recognized, the
// loaded scores for that range are reported; otherwise the message goes
// to the language model for an open-ended reply.
func (c *ChatCmd) Run(app *App) error {
	message := joinWords(c.Message)

	rng, ok := app.Resolver().Parse(message)
	if !ok {
		fmt.Println(app.Ollama.Chat(message))
		return nil
	}

	scores := app.Store.Scores(rng.Start, rng.End)
	if len(scores) == 0 {
		fmt.Printf("I found the period %s .. %s, but there is no data for it. Try loading a CSV first.\n",
			rng.Start.Format(isoDate), rng.End.Format(isoDate))
		return nil
	}

	fmt.Printf("Here are your scores for %s .. %s:\n", rng.Start.Format(isoDate), rng.End.Format(isoDate))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range scores {
		fmt.Fprintf(w, "%s\t%d\n", s.Label, s.Value)
	}
	return w.Flush()
}
