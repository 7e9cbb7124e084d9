package rewrite

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule transforms whole-file text. Rules are applied in table order and each
// one sees the output of the previous rule.
type Rule interface {
	// Name returns the analyzer diagnostic the rule targets; it is also the
	// key used by disabled_rules in .dartlint.yaml.
	Name() string
	Description() string
	Apply(text string) string
}

// substitution is a plain regexp search/replace with template expansion.
type substitution struct {
	name, desc string
	re         *regexp.Regexp
	template   string
}

func (r substitution) Name() string        { return r.name }
func (r substitution) Description() string { return r.desc }
func (r substitution) Apply(text string) string {
	return r.re.ReplaceAllString(text, r.template)
}

// transform wraps an arbitrary text function.
type transform struct {
	name, desc string
	fn         func(string) string
}

func (r transform) Name() string             { return r.name }
func (r transform) Description() string      { return r.desc }
func (r transform) Apply(text string) string { return r.fn(text) }

// prologueGuardWindow is how many leading characters are searched for an
// existing ignore_for_file directive.
const prologueGuardWindow = 100

const ignoreForFile = "// ignore_for_file:"

// prologue inserts a file-level suppression line once when trigger holds.
// Only the first prologueGuardWindow characters are checked for an existing
// directive, so a directive further down does not prevent insertion.
type prologue struct {
	name, desc string
	trigger    func(string) bool
	line       string
}

func (r prologue) Name() string        { return r.name }
func (r prologue) Description() string { return r.desc }
func (r prologue) Apply(text string) string {
	if !r.trigger(text) {
		return text
	}
	if strings.Contains(head(text, prologueGuardWindow), ignoreForFile) {
		return text
	}
	return r.line + "\n" + text
}

// head returns the first n characters of s.
func head(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	end := len(s)
	for ; n > 0 && end > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[end:]
}

// replaceMatches rewrites each match of re with fn's result. fn receives the
// submatch index pairs of the match and returns false to keep it unchanged.
func replaceMatches(re *regexp.Regexp, text string, fn func(m []int) (string, bool)) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		repl, ok := fn(m)
		if !ok {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// group returns submatch n of m, or "" when it did not participate.
func group(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

// commentedAt reports whether pos sits after a // on its line.
func commentedAt(text string, pos int) bool {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	return strings.Contains(text[start:pos], "//")
}

// mapLines applies fn to every line; fn returns the lines to emit in its place.
func mapLines(text string, fn func(i int, lines []string) []string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := range lines {
		out = append(out, fn(i, lines)...)
	}
	return strings.Join(out, "\n")
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
