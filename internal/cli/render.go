package cli

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/osver"
	"github.com/reoring/osver/internal/config"
)

// render writes v with the configured output and format.
func (a *app) render(v osver.Version) error {
	return a.renderAs(v, a.cfg.Output)
}

func (a *app) renderAs(v osver.Version, output string) error {
	switch output {
	case config.OutputJSON:
		data, err := osver.MarshalJSON(v, a.cfg.Format)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	case config.OutputYAML:
		data, err := yaml.Marshal(osver.Formatted{Version: v, Format: a.cfg.Format})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.out, "---\n%s", data)
		return err
	default:
		_, err := fmt.Fprintln(a.out, v.String())
		return err
	}
}

func (a *app) writeJSON(x any) error {
	data, err := gojson.MarshalIndent(x, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
