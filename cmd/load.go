package cmd

import (
	"fmt"
)

type LoadCmd struct {
	Path string `arg:"" help:"CSV file with Date and Score columns" type:"path"`
}

func (c *LoadCmd) Run(app *App) error {
	if err := app.Store.LoadFile(c.Path); err != nil {
		return err
	}

	last, err := app.Store.LastDate()
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d rows (latest: %s). Cached at %s.\n",
		app.Store.Rows(), last.Format(isoDate), app.Store.CachePath())
	return nil
}
