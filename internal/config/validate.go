package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "saberlint.schema.json"

// Validate checks a loaded Config against Schema and for semantic errors the
// schema cannot express. Returns a list of human-readable error strings, one
// per issue.
func Validate(cfg *Config) []string {
	errs := validateSchema(cfg)

	seen := make(map[string]string)
	for _, f := range []struct{ key, name string }{
		{"files.sequencer", cfg.Files.Sequencer},
		{"files.hardware", cfg.Files.Hardware},
		{"files.profiles", cfg.Files.Profiles},
	} {
		if f.name == "" {
			continue
		}
		clean := strings.ToLower(filepath.Clean(f.name))
		if prev, ok := seen[clean]; ok {
			errs = append(errs, fmt.Sprintf("%s: %q is already used by %s", f.key, f.name, prev))
			continue
		}
		seen[clean] = f.key
	}
	return errs
}

func validateSchema(cfg *Config) []string {
	var schemaDoc any
	if err := json.Unmarshal(Schema(), &schemaDoc); err != nil {
		return []string{fmt.Sprintf("unmarshal schema: %v", err)}
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, schemaDoc); err != nil {
		return []string{fmt.Sprintf("add schema resource: %v", err)}
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return []string{fmt.Sprintf("compile schema: %v", err)}
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return []string{fmt.Sprintf("marshal config: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("unmarshal config: %v", err)}
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	p := message.NewPrinter(language.English)
	var errs []string
	for _, cause := range flatten(ve) {
		path := strings.Join(cause.InstanceLocation, ".")
		if path == "" {
			path = "(root)"
		}
		errs = append(errs, fmt.Sprintf("%s: %s", path, cause.ErrorKind.LocalizedString(p)))
	}
	return errs
}

// flatten recursively collects all leaf validation errors.
func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var flat []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flatten(cause)...)
	}
	return flat
}
