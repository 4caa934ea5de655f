package app

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// render prints a value on the app writer in the configured output format.
func (a *App) render(v any) error {
	var (
		out []byte
		err error
	)
	switch a.cfg.OutputFormat {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode %s output: %w", a.cfg.OutputFormat, err)
	}

	_, err = fmt.Fprintf(a.out, "%s\n", out)
	return err
}
