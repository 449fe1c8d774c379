package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/gompdf/pagebreak/internal/pagination"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	MarginsConfig struct {
		Top    float64 `yaml:"top" validate:"gte=0"`
		Right  float64 `yaml:"right" validate:"gte=0"`
		Bottom float64 `yaml:"bottom" validate:"gte=0"`
		Left   float64 `yaml:"left" validate:"gte=0"`
	}

	BandConfig struct {
		Text     string  `yaml:"text"`
		Height   float64 `yaml:"height" validate:"gte=0"`
		FontSize float64 `yaml:"font_size" validate:"gt=0"`
	}

	WatermarkConfig struct {
		Text     string  `yaml:"text"`
		FontSize float64 `yaml:"font_size" validate:"gt=0"`
		Color    string  `yaml:"color"`
	}

	BorderConfig struct {
		Color string  `yaml:"color"`
		Width float64 `yaml:"width" validate:"gte=0"`
	}

	PageConfig struct {
		Size        string          `yaml:"size" validate:"oneof=A3 A4 A5 Letter Legal"`
		Width       float64         `yaml:"width" validate:"gte=0"`
		Height      float64         `yaml:"height" validate:"gte=0"`
		Orientation string          `yaml:"orientation" validate:"oneof=portrait landscape"`
		Margins     MarginsConfig   `yaml:"margins"`
		Header      BandConfig      `yaml:"header"`
		Footer      BandConfig      `yaml:"footer"`
		Watermark   WatermarkConfig `yaml:"watermark"`
		Background  string          `yaml:"background"`
		Border      BorderConfig    `yaml:"border"`
	}

	PaginationConfig struct {
		MaxIterations int `yaml:"max_iterations" validate:"min=1"`
	}

	RenderConfig struct {
		Title          string   `yaml:"title"`
		Author         string   `yaml:"author"`
		Subject        string   `yaml:"subject"`
		Keywords       string   `yaml:"keywords"`
		Producer       string   `yaml:"producer"`
		Compress       bool     `yaml:"compress"`
		MaxImagePixels int      `yaml:"max_image_pixels" validate:"gte=0"`
		ResourcePaths  []string `yaml:"resource_paths" validate:"dive,required"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Page       PageConfig       `yaml:"page"`
		Pagination PaginationConfig `yaml:"pagination"`
		Render     RenderConfig     `yaml:"render"`
		Logging    LoggingConfig    `yaml:"logging"`
	}
)

// Band text is taken literally.
var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField("text"),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkPage)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Dimensions returns the page size in points. Explicit width and height take
// precedence over the named size.
func (c *PageConfig) Dimensions() pagination.PageSize {
	size, ok := pagination.PageSizes[c.Size]
	if !ok {
		size = pagination.PageSizeA4
	}
	if c.Width > 0 && c.Height > 0 {
		size = pagination.PageSize{Width: c.Width, Height: c.Height, Name: "custom"}
	}
	if c.Orientation == "landscape" {
		size = size.Landscape()
	}
	return size
}

// ContentHeight returns the height left for content between the margins and
// the header and footer bands.
func (c *PageConfig) ContentHeight() float64 {
	size := c.Dimensions()
	h := size.Height - c.Margins.Top - c.Margins.Bottom
	if c.Header.Text != "" {
		h -= c.Header.Height
	}
	if c.Footer.Text != "" {
		h -= c.Footer.Height
	}
	return h
}

func checkPage(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	page := &cfg.Page
	if (page.Width > 0) != (page.Height > 0) {
		sl.ReportError(page.Width, "Page.Width", "width", "both_or_none", "")
	}
	size := page.Dimensions()
	if size.Width-page.Margins.Left-page.Margins.Right <= 0 {
		sl.ReportError(page.Margins, "Page.Margins", "margins", "content_width", "")
	}
	if page.ContentHeight() <= 0 {
		sl.ReportError(page.Margins, "Page.Margins", "margins", "content_height", "")
	}
}
