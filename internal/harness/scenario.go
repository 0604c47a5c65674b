package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/afsync/internal/refdata"
)

// Scenario is one offline sync: the two upstream lists and what the tables
// should look like afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cities is the cities endpoint payload.
	Cities []refdata.CityRecord `yaml:"cities"`

	// Airports is the airports endpoint payload.
	Airports []refdata.AirportRecord `yaml:"airports"`

	Expect Expect `yaml:"expect"`
}

// Expect holds the optional expected counts. Nil fields are not checked.
type Expect struct {
	Cities      *int `yaml:"cities,omitempty"`
	Airports    *int `yaml:"airports,omitempty"`
	Skipped     *int `yaml:"skipped,omitempty"`
	Synthesized *int `yaml:"synthesized,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "airport:" vs "airports:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cities) == 0 && len(s.Airports) == 0 {
		return fmt.Errorf("at least one city or airport is required")
	}

	for i, a := range s.Airports {
		if a.ID == "" || a.Code == "" {
			return fmt.Errorf("airports[%d]: id and code are required", i)
		}
	}

	return nil
}
