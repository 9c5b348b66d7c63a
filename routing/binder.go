package routing

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/routegate/routegate/routedef"
)

// Binder instances bind the argument mapping of a definition onto the
// configuration object of the resolved factory. Binding failures are
// fatal to compiling the owning route only.
type Binder interface {
	Bind(name string, args routedef.Args, config interface{}) error
}

// DefaultBinder binds definition arguments with weakly typed decoding,
// so numeric and boolean config fields accept their string forms.
// Positional shorthand arguments are assigned to the fields declared
// by the config's ShortcutFields, in order. Unknown arguments fail the
// binding.
type DefaultBinder struct{}

func (DefaultBinder) Bind(name string, args routedef.Args, config interface{}) error {
	if config == nil {
		if len(args) > 0 {
			return &BindError{Name: name, Err: fmt.Errorf("takes no arguments, got %d", len(args))}
		}

		return nil
	}

	input := make(map[string]interface{}, len(args))
	for k, v := range args.Named() {
		input[k] = v
	}

	positional := args.Positional()
	if sc, ok := config.(routedef.Shortcut); ok && len(positional) > 0 {
		fields := sc.ShortcutFields()
		if len(positional) > len(fields) {
			return &BindError{
				Name: name,
				Err:  fmt.Errorf("too many arguments: got %d, at most %d", len(positional), len(fields)),
			}
		}

		for i, v := range positional {
			input[fields[i]] = v
		}
	} else {
		// configs without a shortcut declaration see the synthesized
		// keys and reject them as unknown
		for i, v := range positional {
			input[routedef.GenKey(i)] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return &BindError{Name: name, Err: err}
	}

	if err := dec.Decode(input); err != nil {
		return &BindError{Name: name, Err: err}
	}

	return nil
}
