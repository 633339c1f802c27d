// Package catalog holds the static, read-only content the client ships with:
// selectable interests, recommended mentors, course paths and explore topics.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Interest is a selectable topic tag shown during onboarding.
type Interest struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Style string `yaml:"style"` // color family used by the presentation layer
}

// Mentor is a suggested historical figure on the history screen.
type Mentor struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Theme string `yaml:"theme"`
}

// CoursePath is a suggested micro-course topic on the courses screen.
type CoursePath struct {
	Title string `yaml:"title"`
	Style string `yaml:"style"`
}

// Catalog is the full static content set.
type Catalog struct {
	Interests     []Interest   `yaml:"interests"`
	Mentors       []Mentor     `yaml:"mentors"`
	CoursePaths   []CoursePath `yaml:"course_paths"`
	ExploreTopics []string     `yaml:"explore_topics"`
}

//go:embed catalog.yaml
var rawCatalog []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the embedded catalog. Parsed once; callers must not mutate it.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(rawCatalog)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Interests))
	for _, in := range c.Interests {
		if in.ID == "" || in.Label == "" {
			return nil, fmt.Errorf("interest %q: id and label are required", in.ID)
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("duplicate interest id %q", in.ID)
		}
		seen[in.ID] = true
	}
	return &c, nil
}

// Interests returns the embedded interest list.
func Interests() []Interest {
	return Default().Interests
}

// Lookup finds an interest by ID.
func (c *Catalog) Lookup(id string) (Interest, bool) {
	for _, in := range c.Interests {
		if in.ID == id {
			return in, true
		}
	}
	return Interest{}, false
}

// Labels maps interest IDs to their display labels, keeping unknown IDs as-is.
func (c *Catalog) Labels(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if in, ok := c.Lookup(id); ok {
			out[i] = in.Label
		} else {
			out[i] = id
		}
	}
	return out
}
