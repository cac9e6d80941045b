// Package content holds the static copy of the invitation: organisation,
// event details, agenda and external links.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Content is the event description rendered on every page.
type Content struct {
	Organisation Organisation `yaml:"organisation"`
	Logo         Image        `yaml:"logo"`
	Event        Event        `yaml:"event"`
	Agenda       []string     `yaml:"agenda"`
	MapURL       string       `yaml:"map_url"`
	AudioURL     string       `yaml:"audio_url"`
}

// Organisation is the hosting foundation.
type Organisation struct {
	Subtitle string `yaml:"subtitle"`
	Name     string `yaml:"name"`
	Tagline  string `yaml:"tagline"`
}

// Image is an external picture with its alt text.
type Image struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// Event describes what, when and where.
type Event struct {
	Title   []string `yaml:"title"`
	Date    string   `yaml:"date"`
	Time    string   `yaml:"time"`
	Address []string `yaml:"address"`
}

// Default returns the embedded content.
func Default() *Content {
	var c Content
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("content: embedded default is invalid: %v", err))
	}
	return &c
}

// Load overlays the YAML file at path on the embedded default.
// An empty path returns the default.
func Load(path string) (*Content, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the fields every page relies on.
func (c *Content) Validate() error {
	if len(c.Event.Title) == 0 {
		return errors.New("event.title is required")
	}
	if c.Event.Date == "" {
		return errors.New("event.date is required")
	}
	if len(c.Agenda) == 0 {
		return errors.New("agenda must list at least one item")
	}
	u, err := url.Parse(c.MapURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("map_url must be an absolute https URL, got %q", c.MapURL)
	}
	return nil
}

// MapLink returns the configured map URL or the built-in venue link.
func (c *Content) MapLink() string {
	if c.MapURL == "" {
		return domain.MapURL
	}
	return c.MapURL
}
