package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	longFlagPrefix  = "--"
	shortFlagPrefix = "-"
	// toggleTypeName keeps help output free of a value placeholder, as for plain booleans.
	toggleTypeName        = "bool"
	toggleInvalidValueMsg = "invalid value %q for --%s; accepted values: true, false, yes, no, on, off, 1, 0"
)

var toggleLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

// parseToggleLiteral maps a yes/no style literal to its boolean value.
func parseToggleLiteral(input string) (bool, bool) {
	parsed, ok := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, ok
}

// toggle is a boolean flag value that understands yes/no and on/off.
type toggle struct {
	target *bool
	name   string
}

func (value *toggle) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		*value.target = true
		return nil
	}
	parsed, ok := parseToggleLiteral(input)
	if !ok {
		return fmt.Errorf(toggleInvalidValueMsg, input, value.name)
	}
	*value.target = parsed
	return nil
}

func (value *toggle) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggle) Type() string {
	return toggleTypeName
}

// registerToggleFlag defines a toggle that defaults to false and may be given
// bare, as --name=<literal>, or as --name <literal>. shorthand may be empty.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, usage string) {
	*target = false
	flagSet.VarP(&toggle{target: target, name: name}, name, shorthand, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(false)
	registered.NoOptDefVal = strconv.FormatBool(true)
}

// normalizeToggleArguments joins a toggle flag with a following yes/no literal
// ("--strict no" becomes "--strict=no") so the literal is not read as a pattern.
// Only flags registered through registerToggleFlag are rewritten, and nothing
// after "--" is touched.
func normalizeToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleSpellings := map[string]string{}
	command.Flags().VisitAll(func(flag *pflag.Flag) {
		if _, isToggle := flag.Value.(*toggle); !isToggle {
			return
		}
		toggleSpellings[longFlagPrefix+flag.Name] = flag.Name
		if flag.Shorthand != "" {
			toggleSpellings[shortFlagPrefix+flag.Shorthand] = flag.Name
		}
	})

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefix {
			return append(normalized, arguments[index:]...)
		}
		flagName, isToggle := toggleSpellings[current]
		if isToggle && index+1 < len(arguments) {
			if _, isLiteral := parseToggleLiteral(arguments[index+1]); isLiteral {
				normalized = append(normalized, longFlagPrefix+flagName+"="+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, current)
	}
	return normalized
}
