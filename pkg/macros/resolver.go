package macros

import (
	"context"

	"github.com/arthur-debert/dynmacros/pkg/errors"
)

// Resolve runs every producer of registry in order and collects the values.
//
// A producer error aborts resolution when mc.Config.Macros.FailFast is set;
// otherwise it is logged and the macro resolves to null.
func Resolve(ctx context.Context, registry []Macro, mc *Context) (*Result, error) {
	if err := validateRegistry(registry); err != nil {
		return nil, err
	}

	logger := mc.Logger
	failFast := mc.Config == nil || mc.Config.Macros.FailFast

	logger.Info().Int("macros", len(registry)).Msg("Resolving macros...")

	result := &Result{Entries: make([]Entry, 0, len(registry))}
	for _, m := range registry {
		value, err := m.Resolve(ctx, mc)
		if err != nil {
			if failFast {
				return nil, errors.Wrapf(err, errors.ErrMacroResolve, "resolving %s macro", m.Name()).
					WithDetail("macro", m.Name())
			}
			logger.Error().Err(err).Str("macro", m.Name()).Msg("Macro failed, resolving it to null")
			value = Null()
		}

		result.Entries = append(result.Entries, Entry{Name: m.Name(), Value: value})

		logger.Info().
			Str("macro", m.Name()).
			Str("kind", value.Kind().String()).
			Str("value", value.String()).
			Msg("Resolved macro")
	}

	return result, nil
}

func validateRegistry(registry []Macro) error {
	seen := make(map[string]bool, len(registry))
	for _, m := range registry {
		name := m.Name()
		if name == "" {
			return errors.New(errors.ErrInvalidInput, "macro with an empty name in registry")
		}
		if seen[name] {
			return errors.Newf(errors.ErrInvalidInput, "macro %s registered twice", name)
		}
		seen[name] = true
	}
	return nil
}
