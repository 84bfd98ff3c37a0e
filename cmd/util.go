package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mauricejumelet/advisor-cli/internal/config"
	"github.com/mauricejumelet/advisor-cli/internal/daterange"
	"github.com/mauricejumelet/advisor-cli/internal/datastore"
	"github.com/mauricejumelet/advisor-cli/internal/ollama"
)

// App carries the shared collaborators into each command's Run method.
type App struct {
	Config *config.Config
	Store  *datastore.Store
	Ollama *ollama.Client
}

// Resolver builds a fresh date-range resolver anchored on the store.
func (a *App) Resolver() *daterange.Resolver {
	return daterange.NewResolver(a.Store, a.Ollama)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func joinWords(words []string) string {
	return strings.TrimSpace(strings.Join(words, " "))
}

const isoDate = "2006-01-02"

// rangeJSON is the JSON shape used by the range/scores commands and the
// web chat endpoint.
type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toRangeJSON(r daterange.Range) rangeJSON {
	return rangeJSON{Start: r.Start.Format(isoDate), End: r.End.Format(isoDate)}
}
