package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/model"
)

// paletteSection matches files that keep their keys under a [palette]
// table.
type paletteSection struct {
	Palette model.Config `toml:"palette"`
}

// Load reads the config at path on top of the defaults. An empty path
// returns the defaults. Unknown keys and invalid values produce warnings
// rather than errors; a file that can't be read or parsed is an error.
func Load(path string) (model.Config, []string, error) {
	cfg := model.DefaultConfig()
	if path == "" {
		return cfg, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(string(data), path)
}

// Parse decodes config content. TOML is accepted as is; INI-style lines
// with bare values ("save_path = output", "resize = True") are normalized
// first. name is only used in messages.
func Parse(data, name string) (model.Config, []string, error) {
	cfg := model.DefaultConfig()
	data, valueErrs := normalize(data)

	topMeta, err := toml.Decode(data, &cfg)
	if err != nil {
		return model.DefaultConfig(), nil, &palerr.ConfigError{
			Message: fmt.Sprintf("cannot parse %s: %v", name, err),
		}
	}

	section := paletteSection{Palette: cfg}
	sectionMeta, err := toml.Decode(data, &section)
	if err != nil {
		return model.DefaultConfig(), nil, &palerr.ConfigError{
			Message: fmt.Sprintf("cannot parse %s: %v", name, err),
		}
	}
	cfg = section.Palette

	var warnings []string
	for _, key := range unknownKeys(topMeta, sectionMeta) {
		warnings = append(warnings, fmt.Sprintf("unknown key %q in %s", key, name))
	}
	for _, err := range valueErrs {
		warnings = append(warnings, err.Error())
	}
	for _, err := range cfg.Validate() {
		warnings = append(warnings, err.Error())
	}

	return cfg, warnings, nil
}

// configKinds maps each config key to the kind of its field.
func configKinds() map[string]reflect.Kind {
	kinds := make(map[string]reflect.Kind)
	t := reflect.TypeOf(model.Config{})
	for i := range t.NumField() {
		f := t.Field(i)
		if tag := f.Tag.Get("toml"); tag != "" {
			kinds[tag] = f.Type.Kind()
		}
	}
	return kinds
}

// normalize rewrites "key = value" lines so they decode as TOML. Bare
// strings are quoted and booleans such as True, yes or off are lowercased.
// A known key whose value cannot be coerced is dropped with a ConfigError,
// so its default applies. Lines that are not assignments are left alone.
func normalize(data string) (string, []error) {
	kinds := configKinds()
	lines := strings.Split(data, "\n")
	section := ""
	var errs []error

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || trimmed[0] == '#':
			continue
		case trimmed[0] == ';':
			lines[i] = "#" + trimmed[1:]
			continue
		case trimmed[0] == '[':
			section = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		kind, known := kinds[key]
		if section != "" && section != "palette" {
			known = false
		}
		if !known {
			if !isTOMLValue(value) {
				lines[i] = key + " = " + quote(value)
			}
			continue
		}

		coerced, ok := coerce(kind, value)
		if !ok {
			errs = append(errs, palerr.InvalidConfig(key, fmt.Sprintf("cannot use %q, using default", value)))
			lines[i] = ""
			continue
		}
		lines[i] = key + " = " + coerced
	}
	return strings.Join(lines, "\n"), errs
}

func coerce(kind reflect.Kind, value string) (string, bool) {
	switch kind {
	case reflect.Bool:
		switch strings.ToLower(stripComment(value)) {
		case "true", "yes", "on", "1":
			return "true", true
		case "false", "no", "off", "0":
			return "false", true
		}
		return "", false
	case reflect.Int:
		n, err := strconv.Atoi(stripComment(value))
		if err != nil {
			return "", false
		}
		return strconv.Itoa(n), true
	case reflect.String:
		if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'") {
			return value, isTOMLValue(value)
		}
		return quote(value), true
	}
	return value, isTOMLValue(value)
}

// stripComment drops a trailing " # comment" from a bare value.
func stripComment(value string) string {
	if i := strings.Index(value, " #"); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}

// isTOMLValue reports whether value parses as a TOML value on its own.
func isTOMLValue(value string) bool {
	var probe map[string]any
	_, err := toml.Decode("v = "+value, &probe)
	return err == nil
}

// quote turns a bare value into a TOML string. Literal strings keep
// Windows path separators as written.
func quote(value string) string {
	if !strings.ContainsAny(value, "'\r") {
		return "'" + value + "'"
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "")
	return `"` + r.Replace(value) + `"`
}

// unknownKeys returns keys neither decode pass consumed.
func unknownKeys(top, section toml.MetaData) []string {
	inTop := make(map[string]bool)
	for _, k := range top.Undecoded() {
		inTop[k.String()] = true
	}

	var keys []string
	for _, k := range section.Undecoded() {
		s := k.String()
		if s == "palette" {
			continue
		}
		if inTop[s] {
			keys = append(keys, s)
		}
	}
	sort.Strings(keys)
	return keys
}
