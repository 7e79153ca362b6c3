package phase

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WriteTimeline dumps the computed boundaries to a YAML file, useful when
// tuning the phase fractions against a reference animation.
func WriteTimeline(tl Timeline, path string) error {
	data, err := yaml.Marshal(tl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTimeline loads a previously dumped timeline.
func ReadTimeline(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, err
	}
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}
