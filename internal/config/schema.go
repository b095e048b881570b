package config

import "encoding/json"

// Schema returns a JSON Schema describing .saberlint.yaml as indented JSON.
func Schema() []byte {
	fileName := func(desc string) map[string]any {
		return map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": desc,
		}
	}

	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                FileName,
		"description":          "Configuration for saberlint, the validator of lightsaber configuration files.",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"files": map[string]any{
				"description":          "Names of the three configuration files, relative to the checked directory.",
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"sequencer": fileName("Auxiliary LED file with LED groups and effects (default AuxLeds.ini). Its valid effects may be referenced by AuxLedsEffect in profiles."),
					"hardware":  fileName("Hardware file with blade, volume and motion settings (default Common.ini). Blade.PixPerBand sets the LED count used for profiles."),
					"profiles":  fileName("Profiles file with per-profile effects (default Profiles.ini)."),
				},
			},
			"defaults": map[string]any{
				"description":          "Values used when the hardware file is absent or unreadable.",
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"led_count": map[string]any{
						"type":        "integer",
						"minimum":     1,
						"maximum":     144,
						"description": "Number of blade LEDs assumed when Blade.PixPerBand cannot be read (default 144).",
					},
				},
			},
			"output": map[string]any{
				"description":          "Report rendering.",
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"format": map[string]any{
						"type":        "string",
						"enum":        []string{FormatText, FormatYAML, FormatJSON},
						"description": "text prints grouped, coloured findings; yaml and json print a machine-readable list of files with their findings.",
					},
					"color": map[string]any{
						"type":        "string",
						"enum":        []string{ColorAuto, ColorAlways, ColorNever},
						"description": "auto colours output on terminals only; always and never force it.",
					},
				},
			},
			"strict": map[string]any{
				"type":        "boolean",
				"description": "Treat warnings as errors when choosing the exit status.",
			},
		},
	}

	out, _ := json.MarshalIndent(schema, "", "  ")
	return out
}
