package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads ChatOptions from a YAML settings file. Missing file is
// not an error; defaults apply.
func LoadConfig(path string) (*ChatOptions, error) {
	opts := &ChatOptions{
		BaseURL:  "http://127.0.0.1:3117",
		Provider: "anthropic",
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return opts, nil
}
