package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/crewroster"
	"github.com/travigo/dutyboard/pkg/dataimporter/manager"
	"github.com/travigo/dutyboard/pkg/itinerary"
	"github.com/travigo/dutyboard/pkg/overlap"
	"github.com/travigo/dutyboard/pkg/recognition"
	"github.com/travigo/dutyboard/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath   = "data/dutyboard.yaml"
	DefaultListen = ":8080"
	defaultWindow = "PT15M"
)

type Config struct {
	// Directory of data source manifests, read in addition to Datasets
	DataSources string             `yaml:"datasources"`
	Datasets    []datasets.DataSet `yaml:"datasets"`

	KeyStations     []string `yaml:"key_stations"`
	RestThreshold   string   `yaml:"rest_threshold"`
	ReliefTolerance string   `yaml:"relief_tolerance"`

	ObservationKeywords []string `yaml:"observation_keywords"`
	LineTolerance       float64  `yaml:"line_tolerance"`

	Recognition Recognition `yaml:"recognition"`

	Listen string `yaml:"listen"`

	path string
}

type Recognition struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// Path picks the configuration file: the flag value, then DUTYBOARD_CONFIG, then the default
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	env := util.GetEnvironmentVariables()
	if env["DUTYBOARD_CONFIG"] != "" {
		return env["DUTYBOARD_CONFIG"]
	}

	return DefaultPath
}

func Load(path string) (*Config, error) {
	body, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}
	if err != nil {
		return nil, err
	}

	config, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	config.path = path

	return config, nil
}

func Parse(body []byte) (*Config, error) {
	config := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(body))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	config.applyDefaults()

	if _, err := config.RestThresholdMinutes(); err != nil {
		return nil, err
	}
	if _, err := config.ReliefToleranceMinutes(); err != nil {
		return nil, err
	}
	if _, err := config.RecognitionTimeout(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	env := util.GetEnvironmentVariables()

	c.KeyStations = util.RemoveDuplicateStrings(c.KeyStations, nil)
	if len(c.KeyStations) == 0 {
		c.KeyStations = append([]string{}, itinerary.DefaultKeyStations...)
	}

	if c.RestThreshold == "" {
		c.RestThreshold = defaultWindow
	}
	if c.ReliefTolerance == "" {
		c.ReliefTolerance = defaultWindow
	}

	if len(c.ObservationKeywords) == 0 {
		c.ObservationKeywords = append([]string{}, crewroster.DefaultObservationKeywords...)
	}
	if c.LineTolerance == 0 {
		c.LineTolerance = crewroster.DefaultLineTolerance
	}

	if env["DUTYBOARD_RECOGNITION_API_KEY"] != "" {
		c.Recognition.APIKey = env["DUTYBOARD_RECOGNITION_API_KEY"]
	}

	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

func (c *Config) RestThresholdMinutes() (int, error) {
	return minutes("rest_threshold", c.RestThreshold)
}

func (c *Config) ReliefToleranceMinutes() (int, error) {
	return minutes("relief_tolerance", c.ReliefTolerance)
}

func (c *Config) RecognitionTimeout() (time.Duration, error) {
	if c.Recognition.Timeout == "" {
		return 0, nil
	}

	return parseDuration("recognition.timeout", c.Recognition.Timeout)
}

// DataSets lists the inline datasets followed by the ones registered in the manifest directory.
// Relative paths are taken from the directory of the configuration file.
func (c *Config) DataSets() ([]datasets.DataSet, error) {
	base := filepath.Dir(c.path)

	var dataSets []datasets.DataSet
	for _, dataset := range c.Datasets {
		if dataset.Source != "" && !filepath.IsAbs(dataset.Source) && c.path != "" {
			dataset.Source = filepath.Join(base, dataset.Source)
		}
		dataSets = append(dataSets, dataset)
	}

	if c.DataSources != "" {
		directory := c.DataSources
		if !filepath.IsAbs(directory) && c.path != "" {
			directory = filepath.Join(base, directory)
		}

		registered, err := manager.GetRegisteredDataSets(directory)
		if err != nil {
			return nil, err
		}
		dataSets = append(dataSets, registered...)
	}

	return dataSets, nil
}

func (c *Config) Loader() *manager.Loader {
	return &manager.Loader{
		ObservationKeywords: c.ObservationKeywords,
		LineTolerance:       c.LineTolerance,
	}
}

func (c *Config) ItineraryBuilder() *itinerary.Builder {
	builder := itinerary.NewBuilder()
	builder.KeyStations = c.KeyStations

	if restThreshold, err := c.RestThresholdMinutes(); err == nil {
		builder.RestThreshold = restThreshold
	}

	return builder
}

func (c *Config) Comparator(itineraries *itinerary.Builder) *overlap.Comparator {
	comparator := overlap.NewComparator(itineraries)

	if reliefTolerance, err := c.ReliefToleranceMinutes(); err == nil {
		comparator.ReliefTolerance = reliefTolerance
	}

	return comparator
}

func (c *Config) Recognizer() recognition.Recognizer {
	timeout, _ := c.RecognitionTimeout()

	return recognition.NewClient(recognition.Config{
		Endpoint: c.Recognition.Endpoint,
		APIKey:   c.Recognition.APIKey,
		Timeout:  timeout,
	})
}

func minutes(name string, value string) (int, error) {
	parsed, err := parseDuration(name, value)
	if err != nil {
		return 0, err
	}

	return int(parsed / time.Minute), nil
}

func parseDuration(name string, value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid ISO-8601 duration %q: %w", name, value, err)
	}

	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	shifted := parsed.Shift(reference).Sub(reference)

	if shifted < 0 {
		return 0, fmt.Errorf("%s: negative duration %q", name, value)
	}

	log.Debug().Str("setting", name).Str("value", shifted.String()).Msg("Parsed duration")

	return shifted, nil
}
