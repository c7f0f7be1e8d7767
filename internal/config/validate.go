package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the typed view of the merged settings.
type Config struct {
	DataDir    string          `mapstructure:"data_dir" validate:"required"`
	StorageURL string          `mapstructure:"storage_url" validate:"required,storage_url"`
	Preview    PreviewConfig   `mapstructure:"preview"`
	Render     RenderConfig    `mapstructure:"render"`
	TUI        TUIConfig       `mapstructure:"tui"`
	Log        LogConfig       `mapstructure:"log"`
	BuildInfo  BuildInfoConfig `mapstructure:"buildinfo"`
	Editor     EditorConfig    `mapstructure:"editor"`
}

type PreviewConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
	Dir      string        `mapstructure:"dir"`
}

type RenderConfig struct {
	CacheSize int `mapstructure:"cache_size" validate:"gte=0"`
}

type TUIConfig struct {
	Style    string `mapstructure:"style" validate:"required"`
	WordWrap int    `mapstructure:"word_wrap" validate:"gte=20,lte=400"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type BuildInfoConfig struct {
	RepoURL string `mapstructure:"repo_url" validate:"omitempty,url"`
}

type EditorConfig struct {
	DeleteEmpty bool `mapstructure:"delete_empty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key instead of the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("storage_url", func(fl validator.FieldLevel) bool {
		scheme, rest, ok := strings.Cut(fl.Field().String(), "://")
		if !ok {
			return false
		}
		switch scheme {
		case "mem":
			return true
		case "file", "sqlite":
			return rest != ""
		}
		return false
	})
	return v
}

// Decode unmarshals v into a Config without validating it.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// CheckConfigValidity decodes and validates v, joining every problem into
// one error.
func CheckConfigValidity(v *viper.Viper) error {
	c, err := Decode(v)
	if err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the struct tags on c.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	// Namespace is "Config.preview.debounce"; drop the root type.
	_, key, _ := strings.Cut(e.Namespace(), ".")
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", key, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", key)
	case "storage_url":
		return fmt.Sprintf("%s must be sqlite://<path>, file://<dir> or mem://", key)
	default:
		return fmt.Sprintf("%s is invalid", key)
	}
}
