package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules of cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return errors.WrapError(err, errors.CategoryInternal, "configuration validation failed").Build()
		}
		lists := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			lists = append(lists, fieldLabel(fe)+" ("+fe.Tag()+")")
		}
		return errors.ConfigError("invalid configuration: " + strings.Join(lists, ", ")).
			WithCause(err).
			Build()
	}

	seen := map[string]int{}
	for i, s := range cfg.Sites {
		if s.Name == "" {
			continue
		}
		if j, dup := seen[s.Name]; dup {
			return errors.ConfigError(fmt.Sprintf("duplicate site name %q (sites[%d] and sites[%d])", s.Name, j, i)).Build()
		}
		seen[s.Name] = i
	}
	return nil
}

// fieldLabel turns "Config.Watch.MetricsAddr" into "Watch.MetricsAddr".
func fieldLabel(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func (c *Config) normalize() error {
	var err error
	if c.Output.Format, err = ParseOutputFormat(string(c.Output.Format)); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid output.format").UserAction().Build()
	}
	if c.Logging.Level, err = ParseLogLevel(string(c.Logging.Level)); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").UserAction().Build()
	}
	if c.Logging.Format, err = ParseLogFormat(string(c.Logging.Format)); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").UserAction().Build()
	}
	return nil
}
