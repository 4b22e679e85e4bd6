package config

import (
	"reflect"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

// Validator is implemented by configuration structs that check their own
// invariants. Load calls Validate after the required-field check passes.
// A returned *sserr.Error is passed through; any other error is wrapped
// as a configuration error.
type Validator interface {
	Validate() error
}

func validate(cfg any, rv reflect.Value) error {
	err := walk(rv, "", "", func(f leaf) error {
		if f.tag.Get("required") == "true" && f.value.IsZero() {
			return sserr.Configurationf("config: required field %q is empty", f.path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		if _, isDomain := sserr.AsError(err); isDomain {
			return err
		}
		return sserr.Configuration(err, "config: validation failed")
	}
	return nil
}
