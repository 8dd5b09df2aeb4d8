package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/islandferry/pkg/ferry"
	"github.com/travigo/islandferry/pkg/util"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "data/islandferry.yaml"

const defaultScheduleURL = "https://www.toronto.ca/explore-enjoy/parks-gardens-beaches/toronto-island-park/all-ferry-schedules/"

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

type ScheduleConfig struct {
	// Source is a local path or an http(s) URL of the timetable document.
	Source          string `yaml:"source" validate:"required"`
	CacheExpiration string `yaml:"cacheExpiration" validate:"required,isoduration"`
	FetchTimeout    string `yaml:"fetchTimeout" validate:"required,isoduration"`
}

type BoardConfig struct {
	Timezone        string `yaml:"timezone" validate:"required,timezone"`
	HighlightWindow string `yaml:"highlightWindow" validate:"required,isoduration"`
	OverlapPolicy   string `yaml:"overlapPolicy" validate:"omitempty,oneof=all latest-start"`
}

type ScraperConfig struct {
	Source string `yaml:"source" validate:"required"`
	Output string `yaml:"output" validate:"required"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Board    BoardConfig    `yaml:"board"`
	Scraper  ScraperConfig  `yaml:"scraper"`
}

func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Listen: ":8080",
		},
		Schedule: ScheduleConfig{
			Source:          "data/schedule.json",
			CacheExpiration: "PT5M",
			FetchTimeout:    "PT30S",
		},
		Board: BoardConfig{
			Timezone:        "America/Toronto",
			HighlightWindow: "PT1H",
			OverlapPolicy:   string(ferry.OverlapLatestStart),
		},
		Scraper: ScraperConfig{
			Source: defaultScheduleURL,
			Output: "data/schedule.json",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies ISLANDFERRY_ environment
// overrides and validates the result. A missing file is only an error when required is set.
func Load(path string, required bool) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvironment(util.GetEnvironmentVariables())

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c *AppConfig) applyEnvironment(env map[string]string) {
	overrides := map[string]*string{
		"LISTEN":                    &c.Server.Listen,
		"SCHEDULE_SOURCE":           &c.Schedule.Source,
		"SCHEDULE_CACHE_EXPIRATION": &c.Schedule.CacheExpiration,
		"SCHEDULE_FETCH_TIMEOUT":    &c.Schedule.FetchTimeout,
		"TIMEZONE":                  &c.Board.Timezone,
		"HIGHLIGHT_WINDOW":          &c.Board.HighlightWindow,
		"OVERLAP_POLICY":            &c.Board.OverlapPolicy,
		"SCRAPER_SOURCE":            &c.Scraper.Source,
		"SCRAPER_OUTPUT":            &c.Scraper.Output,
	}

	for name, field := range overrides {
		if value := util.GetPrefixedVariable(env, name); value != "" {
			*field = value
		}
	}
}

func (c AppConfig) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("isoduration", func(fl validator.FieldLevel) bool {
		_, err := ParseDuration(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// ParseDuration converts an ISO 8601 duration such as PT1H into a fixed time.Duration.
func ParseDuration(value string) (time.Duration, error) {
	duration, err := iso8601.ParseISO8601(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}

	if duration == (iso8601.Duration{}) {
		return 0, fmt.Errorf("duration %q is zero", value)
	}

	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return duration.Shift(reference).Sub(reference), nil
}

func (b BoardConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

func (b BoardConfig) Window() (time.Duration, error) {
	return ParseDuration(b.HighlightWindow)
}

func (b BoardConfig) Overlap() (ferry.OverlapPolicy, error) {
	return ferry.ParseOverlapPolicy(b.OverlapPolicy)
}

func (s ScheduleConfig) Expiration() (time.Duration, error) {
	return ParseDuration(s.CacheExpiration)
}

func (s ScheduleConfig) Timeout() (time.Duration, error) {
	return ParseDuration(s.FetchTimeout)
}
