package anim

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Config drives the command-line front end.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Data struct {
		// Dataset is a long-format CSV: axis columns then a value column.
		Dataset string `yaml:"dataset"`
		// Stations is a CSV station catalog: name,lat,lon.
		Stations string `yaml:"stations"`
	} `yaml:"data"`
	Animation struct {
		// Kind picks one of the built-in renderers: data_globe,
		// connections_globe, lag_mat, lag_network, corr_thresh, cca_ang.
		Kind string `yaml:"kind"`
		// Axis, OutDir and Name default per kind when empty.
		Axis   string `yaml:"axis"`
		OutDir string `yaml:"outDir"`
		Name   string `yaml:"name"`

		Stations   []string `yaml:"stations"`
		Components []string `yaml:"components"`
		DayNight   *bool    `yaml:"daynight"`
		Colour     bool     `yaml:"colour"`

		// Threshold for connection drawing on adjacency plots.
		Threshold float64 `yaml:"threshold"`
		// Weight selects the CCA weight heatmap, a or b.
		Weight string `yaml:"weight"`

		FrameDelayMs int `yaml:"frameDelayMs"`
		Workers      int `yaml:"workers"`
	} `yaml:"animation"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topic    string `yaml:"topic"`
	} `yaml:"mqtt"`
	Preview struct {
		// Addr serves the output directory over HTTP when set.
		Addr string `yaml:"addr"`
	} `yaml:"preview"`
}

// ReadConfig decodes a YAML config.
func ReadConfig(r io.Reader) (Config, error) {
	var cfg Config
	err := yaml.NewDecoder(r).Decode(&cfg)
	return cfg, err
}
