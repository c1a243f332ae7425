package checker

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"github.com/typeview/typeview/internal/model"
)

// problemLine matches the checker's default diagnostic format:
//
//	path:line:col: severity: message  [code]
//
// The column segment and the trailing error code are both optional,
// depending on how the checker was invoked.
var problemLine = regexp.MustCompile(`^(.+?):(\d+)(?::(\d+))?: (error|warning|note): (.*?)(?:\s+\[([a-z0-9-]+)\])?$`)

// ParseOutput reads checker stdout and groups diagnostics by file.
// Lines that do not look like diagnostics (summary lines, blank lines)
// are skipped.
func ParseOutput(r io.Reader) (model.Results, error) {
	results := make(model.Results)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		m := problemLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		severity, ok := model.ParseSeverity(m[4])
		if !ok {
			continue
		}

		line, _ := strconv.Atoi(m[2])
		column := 0
		if m[3] != "" {
			column, _ = strconv.Atoi(m[3])
		}

		file := m[1]
		results[file] = append(results[file], model.Problem{
			Line:     line,
			Column:   column,
			Message:  m[5],
			Severity: severity,
			Code:     m[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
