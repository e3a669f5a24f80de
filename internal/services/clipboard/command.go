package clipboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// CommandCopier copies text by piping it to an external clipboard utility.
type CommandCopier struct {
	executable string
	arguments  []string
}

// NewCommandCopier constructs a CommandCopier that runs executable with arguments.
func NewCommandCopier(executable string, arguments ...string) *CommandCopier {
	return &CommandCopier{executable: executable, arguments: arguments}
}

// Copy runs the utility and feeds text on its standard input.
func (copier *CommandCopier) Copy(text string) error {
	// #nosec G204
	command := exec.Command(copier.executable, copier.arguments...)
	command.Stdin = strings.NewReader(text)
	var errorOutput bytes.Buffer
	command.Stderr = &errorOutput
	if runError := command.Run(); runError != nil {
		details := strings.TrimSpace(errorOutput.String())
		if details != "" {
			return fmt.Errorf("%s: %w: %s", copier.executable, runError, details)
		}
		return fmt.Errorf("%s: %w", copier.executable, runError)
	}
	return nil
}
