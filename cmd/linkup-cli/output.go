package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// render prints v using its JSON field names, as indented JSON or as YAML.
func render(w io.Writer, v any, format string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	switch format {
	case formatJSON:
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		var tree any
		if err := yaml.Unmarshal(b, &tree); err != nil {
			return fmt.Errorf("convert output: %w", err)
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
