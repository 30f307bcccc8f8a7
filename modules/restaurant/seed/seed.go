package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed restaurants.yaml
var restaurantsYAML []byte

type Restaurant struct {
	Name         string `yaml:"name"`
	OpeningHours string `yaml:"opening_hours"`
}

type file struct {
	Restaurants []Restaurant `yaml:"restaurants"`
}

// Restaurants returns the bundled sample directory.
func Restaurants() ([]Restaurant, error) {
	return Parse(restaurantsYAML)
}

func Parse(data []byte) ([]Restaurant, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return f.Restaurants, nil
}
