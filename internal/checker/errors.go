package checker

import (
	"fmt"
	"regexp"
)

// genericFailure is shown when no known cause matches.
const genericFailure = "The scan failed due to an unexpected error. " +
	"Check that the checker is installed and runs from the command line."

// failureCauses maps known failure texts to friendly explanations. The
// table is evaluated in order and the first matching pattern wins;
// capture groups are substituted into the message.
var failureCauses = []struct {
	pattern *regexp.Regexp
	message string
}{
	{
		regexp.MustCompile(`Property \$\{([^}]*)\} has not been set`),
		"The property %s has not been set. Define it in the checker configuration and rescan.",
	},
	{
		regexp.MustCompile(`Unable to instantiate (.*)`),
		"Could not create an instance of %s. Check the checker installation and configuration.",
	},
	{
		regexp.MustCompile(`executable file not found`),
		"The checker executable was not found. Install it or set the checker path in the configuration.",
	},
	{
		regexp.MustCompile(`No module named '?([^'\s]+)'?`),
		"The Python module %s is missing from the environment used for scanning.",
	},
	{
		regexp.MustCompile(`no Python files found under (.*)`),
		"No Python files were found under %s. Check the include globs in the configuration.",
	},
}

// FriendlyMessage maps a scan failure onto a human-readable explanation.
// Unrecognized failures yield a generic message.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, cause := range failureCauses {
		m := cause.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		args := make([]any, len(m)-1)
		for i, group := range m[1:] {
			args[i] = group
		}
		return fmt.Sprintf(cause.message, args...)
	}
	return genericFailure
}
