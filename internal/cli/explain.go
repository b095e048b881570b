package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const explainText = `saberlint: validator for lightsaber firmware configuration files

PURPOSE
  saberlint checks the three hand-written configuration files of a saber
  before they are copied to the SD card. It never modifies them. Problems are
  grouped by section; errors mean the firmware will reject or misread a
  value, warnings mean the value is accepted but probably not what you want.

FILES (checked in this order)
  AuxLeds.ini   LED groups and auxiliary LED effects (sequencers).
                Produces the list of auxiliary effect names.
  Common.ini    Blade geometry, volume, dead times and motion tuning.
                Produces the LED count of the main blade.
  Profiles.ini  Per-profile blade effects. Checked against the names and the
                LED count produced above. When Common.ini is absent or broken
                the LED count falls back to defaults.led_count.
  An absent file is reported and skipped, never an error.

COMMANDS
  check [dir]          Validate all three files of dir. Exit 1 on errors.
  validate KIND FILE   Validate one file. KIND is sequencer, hardware,
                       profiles or config. --leds and --aux stand in for the
                       values normally produced by the other files.
  init [dir]           Write a default .saberlint.yaml.
  schema               Output the JSON Schema for .saberlint.yaml.
  explain              Print this reference.
  version              Print the version.

  check and validate accept --format text|yaml|json, --color auto|always|never
  and --strict (warnings fail the run too).

DIALECT
  The files use a relaxed JSON:
    - the top level is an implicit object (no outer braces)
    - // line comments and /* block comments */
    - identifiers are written without quotes: Blade: {BandNumber: 1}
    - trailing commas are allowed
    - double quotes are not allowed anywhere
    - identifiers need at least two characters (a letter followed by word
      characters); single-letter keys cannot be written
  Key lookup ignores case. Two keys of one object that differ only in case are
  reported, and only the first one is used.
  Syntax errors are reported with the line number of the original file.

RULES
  Every section is checked on its own, so one bad value never hides the rest.
  Unknown keys are warnings. Ranges are inclusive. Some numbers carry a
  recommended range: values outside it but inside the valid range are
  warnings. Durations are 0..36000000 ms. Colours are [R, G, B] with values
  0..255, or a colour name.

  AuxLeds.ini
    LedGroups: [{Name: n, Leds: [Led1, ...]}, ...]   group names are unique
    Effect: [{Config: [Led1, Led2] | Group: n, Sequence: [steps]}, ...]
      - at most 8 sequencers; one LED belongs to one sequencer per effect
      - a step contains Brightness, Repeat or Wait and nothing but
        Repeat, Wait, Brightness, Smooth, Name
      - Brightness has one value per LED: 0..100 or CopyRed, CopyGreen,
        CopyBlue
      - Smooth needs Brightness in the same step
      - Repeat: {StartingFrom: step name, Count: n | forever}
      - step names are unique within a sequence
    Only effects without errors are offered to Profiles.ini.

  Common.ini
    Blade, Blade2: BandNumber 0..8, PixPerBand 0..144, at most 2000 LEDs
    Volume, DeadTime, PowerOffTimeout, ClashFlashDuration
    Motion: Swing, Spin, Clash, Stab, Screw
      angular speeds 1..500 (recommended 10..400), accelerations 100..14000
      (recommended 300..10000); paired low/high thresholds out of order are
      warnings

  Profiles.ini
    Profile: {PowerOn, AfterWake, PowerOff, WorkingMode, Flaming, Flickering,
              Blaster, Clash, Stab, Lockup, Blade2}
      - every effect is optional; pixel sizes are bounded by the LED count
      - AuxLedsEffect must name an effect of AuxLeds.ini, otherwise a
        warning is reported and the firmware skips it

CONFIG FORMAT (.saberlint.yaml)
  Looked up from the checked directory upwards; -c/--config overrides.

  files:
    sequencer: AuxLeds.ini
    hardware: Common.ini
    profiles: Profiles.ini
  defaults:
    led_count: 144       # used when Common.ini gives no LED count
  output:
    format: text         # text, yaml or json
    color: auto          # auto, always or never
  strict: false          # warnings fail the run`

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Print a reference of the file dialect and the rules saberlint checks",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), explainText)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
