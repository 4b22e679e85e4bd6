// Package config loads layered configuration for Jaunts services.
//
// Values are resolved in this order, later layers winning:
//
//	envDefault struct tags
//	YAML or JSON config file
//	environment variables
//
// After loading, fields tagged `required:"true"` must be non-zero and a
// struct implementing [Validator] is asked to validate itself.
//
// # Struct Tags
//
//   - `env:"NAME"` binds a leaf field to an environment variable. On a
//     nested struct the tag becomes a prefix for the struct's fields.
//   - `envDefault:"value"` is applied while the field is still zero.
//   - `required:"true"` rejects a zero value after all layers ran.
//
// File loading goes through the field's `yaml` or `json` tags.
//
//	cfg := config.MustLoad[config.App](
//	    config.New().WithEnvPrefix("JAUNTS").WithFile("jaunts.yaml"),
//	)
//
// Every loader failure is a [sserr.CodeConfiguration] error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Loader resolves configuration into a struct. It is not safe for
// concurrent use.
type Loader struct {
	envPrefix string
	filePath  string
	lookupEnv func(string) (string, bool)
}

// New returns a Loader that reads environment variables only.
func New() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// WithEnvPrefix prefixes every environment variable name with the
// upper-cased prefix and an underscore ("JAUNTS" + "HOST" = JAUNTS_HOST).
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = strings.ToUpper(prefix)
	return l
}

// WithFile adds a .yaml, .yml or .json file layer. A missing file is not
// an error.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// Load fills cfg, which must be a non-nil pointer to a struct.
func (l *Loader) Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return sserr.Configurationf("config: Load requires a non-nil pointer to a struct, got %T", cfg)
	}
	rv = rv.Elem()

	err := walk(rv, "", "", func(f leaf) error {
		def, ok := f.tag.Lookup("envDefault")
		if !ok || !f.value.IsZero() {
			return nil
		}
		if err := setField(f.value, def); err != nil {
			return sserr.Configuration(err, fmt.Sprintf("config: bad default for %s", f.path))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := l.loadFile(cfg); err != nil {
		return err
	}

	err = walk(rv, "", l.envPrefix, func(f leaf) error {
		if f.env == "" {
			return nil
		}
		raw, ok := l.lookupEnv(f.env)
		if !ok {
			return nil
		}
		if err := setField(f.value, raw); err != nil {
			return sserr.Configuration(err, fmt.Sprintf("config: bad value in %s for %s", f.env, f.path))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return validate(cfg, rv)
}

// MustLoad loads a T or panics. Use it from main.
func MustLoad[T any](loader *Loader) T {
	var cfg T
	if err := loader.Load(&cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func (l *Loader) loadFile(cfg any) error {
	if l.filePath == "" {
		return nil
	}
	if strings.Contains(l.filePath, "..") {
		return sserr.Configurationf("config: file path %q must not contain ..", l.filePath)
	}

	data, err := os.ReadFile(l.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return sserr.Configuration(err, fmt.Sprintf("config: read %s", l.filePath))
	}

	switch ext := strings.ToLower(filepath.Ext(l.filePath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return sserr.Configurationf("config: unsupported file extension %q", ext)
	}
	if err != nil {
		return sserr.Configuration(err, fmt.Sprintf("config: parse %s", l.filePath))
	}
	return nil
}

// leaf is a settable non-struct field reached by walk.
type leaf struct {
	value reflect.Value
	tag   reflect.StructTag
	path  string // dotted Go field path, e.g. "Postgres.Host"
	env   string // fully prefixed env var name, empty if untagged
}

// walk visits every settable leaf field of rv depth-first. Nested structs
// other than time.Time extend both the field path and, through their env
// tag, the env prefix.
func walk(rv reflect.Value, path, envPrefix string, visit func(leaf) error) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}

		fieldPath := joinPath(path, ".", sf.Name)
		envTag := sf.Tag.Get("env")

		if isNested(sf.Type) {
			if err := walk(fv, fieldPath, joinPath(envPrefix, "_", envTag), visit); err != nil {
				return err
			}
			continue
		}

		var env string
		if envTag != "" {
			env = joinPath(envPrefix, "_", envTag)
		}
		if err := visit(leaf{value: fv, tag: sf.Tag, path: fieldPath, env: env}); err != nil {
			return err
		}
	}
	return nil
}

func isNested(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != reflect.TypeOf(time.Time{})
}

func joinPath(prefix, sep, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + sep + name
	}
}

// setField parses value into field. Supported kinds are strings (including
// named string types such as Secret), bools, signed integers,
// time.Duration and comma-separated string slices.
func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice of %s", field.Type().Elem().Kind())
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			slice.Index(i).SetString(strings.TrimSpace(p))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
