package tui

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const previewContextLines = 8

// preview holds the source context shown next to the selected problem.
type preview struct {
	file   string
	start  int // 1-based line number of lines[0]
	target int // problem line
	lines  []highlightedLine
}

// highlightedLine is one source line as syntax-highlighted tokens.
type highlightedLine struct {
	tokens []token
}

// token is a syntax-highlighted chunk of text.
type token struct {
	text  string
	color string // ANSI color string, empty for default
}

func (hl highlightedLine) plain() string {
	var b strings.Builder
	for _, t := range hl.tokens {
		b.WriteString(t.text)
	}
	return b.String()
}

// loadPreview reads the source context around a problem line and applies
// syntax highlighting.
func loadPreview(path string, targetLine, contextLines int) (preview, error) {
	lines, start, err := readContext(path, targetLine, contextLines)
	if err != nil {
		return preview{}, err
	}
	return preview{
		file:   path,
		start:  start,
		target: targetLine,
		lines:  highlightLines(path, lines),
	}, nil
}

func readContext(path string, targetLine, contextLines int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	start := targetLine - contextLines
	if start < 1 {
		start = 1
	}
	end := targetLine + contextLines

	var lines []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum >= start && lineNum <= end {
			lines = append(lines, scanner.Text())
		}
		if lineNum > end {
			break
		}
	}
	return lines, start, scanner.Err()
}

// highlightLines tokenizes source lines for a given filename. Returns
// one highlightedLine per input line; on any lexer trouble the lines
// come back unstyled.
func highlightLines(filename string, lines []string) []highlightedLine {
	lexer := lexerForFile(filename)
	if lexer == nil {
		return plainLines(lines)
	}

	source := strings.Join(lines, "\n")
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainLines(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	result := make([]highlightedLine, 0, len(lines))
	current := highlightedLine{}

	for _, tok := range iterator.Tokens() {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current)
				current = highlightedLine{}
			}
			if part != "" {
				current.tokens = append(current.tokens, token{
					text:  part,
					color: tokenColor(style, tok.Type),
				})
			}
		}
	}
	result = append(result, current)

	for len(result) < len(lines) {
		result = append(result, highlightedLine{})
	}
	return result
}

func plainLines(lines []string) []highlightedLine {
	result := make([]highlightedLine, len(lines))
	for i, line := range lines {
		result[i] = highlightedLine{tokens: []token{{text: line}}}
	}
	return result
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
