// Package config loads layered settings for yamlsort.
//
// Sources are applied lowest to highest priority: struct defaults, a YAML
// settings file, environment variables, then explicitly set CLI flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var (
	// ErrFileNotFound indicates that an explicitly requested settings file
	// does not exist.
	ErrFileNotFound = errors.New("settings file not found")

	// ErrLoad indicates that a source could not be loaded.
	ErrLoad = errors.New("load settings")
)

// Loader layers settings from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
}

// Validator can be implemented by settings structs to validate themselves
// after unmarshaling.
type Validator interface {
	Validate() error
}

// NewLoader creates a new [Loader]. envPrefix is given without the trailing
// delimiter, e.g. "YAMLSORT". Environment variables use a double underscore
// for nesting: YAMLSORT__LOG__LEVEL -> log.level.
func NewLoader(envPrefix string) *Loader {
	return &Loader{
		k:         koanf.New("."),
		envPrefix: envPrefix + "__",
	}
}

// LoadWithDefaults loads defaults, then the file at path, then environment
// variables. An empty path skips the file. A non-empty path that does not
// exist returns [ErrFileNotFound].
func (l *Loader) LoadWithDefaults(defaults any, path string) error {
	if defaults != nil {
		err := l.k.Load(structs.Provider(defaults, "koanf"), nil)
		if err != nil {
			return fmt.Errorf("%w: defaults: %w", ErrLoad, err)
		}
	}

	if path != "" {
		_, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		err = l.k.Load(file.Provider(path), koanfyaml.Parser())
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
		}
	}

	envProvider := env.Provider(l.envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, l.envPrefix))

		return strings.ReplaceAll(key, "__", ".")
	})

	err := l.k.Load(envProvider, nil)
	if err != nil {
		return fmt.Errorf("%w: environment: %w", ErrLoad, err)
	}

	return nil
}

// LoadFlags applies flags that were explicitly set, using mappings from
// flag name to settings key. Slice flags are stored as slices.
func (l *Loader) LoadFlags(flags *pflag.FlagSet, mappings map[string]string) error {
	var errs []error

	flags.Visit(func(f *pflag.Flag) {
		key, ok := mappings[f.Name]
		if !ok {
			return
		}

		value, err := flagValue(f)
		if err == nil {
			err = l.k.Set(key, value)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

// flagValue returns the typed value of f, so that dumped settings keep
// their types.
func flagValue(f *pflag.Flag) (any, error) {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice(), nil
	}

	switch f.Value.Type() {
	case "bool":
		return strconv.ParseBool(f.Value.String())
	case "int":
		return strconv.Atoi(f.Value.String())
	}

	return f.Value.String(), nil
}

// Unmarshal unmarshals the settings under path into out. An empty path
// unmarshals everything.
func (l *Loader) Unmarshal(path string, out any) error {
	return l.k.Unmarshal(path, out)
}

// UnmarshalAndValidate unmarshals like [Loader.Unmarshal] and then calls
// Validate if out implements [Validator].
func (l *Loader) UnmarshalAndValidate(path string, out any) error {
	err := l.k.Unmarshal(path, out)
	if err != nil {
		return err
	}

	if v, ok := out.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// Set sets a single settings key.
func (l *Loader) Set(key string, value any) error {
	return l.k.Set(key, value)
}

// Raw returns the loaded settings as a nested map.
func (l *Loader) Raw() map[string]any {
	return l.k.Raw()
}

// DumpYAML writes the loaded settings to w as YAML.
func (l *Loader) DumpYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(l.k.Raw())
	if err != nil {
		return err
	}

	return enc.Close()
}
