package usage

import (
	"fmt"
	"strings"

	"github.com/abdidvp/dartlint/internal/domain"
)

// ImportRule maps a dart: library to the substrings that count as evidence
// it is used.
type ImportRule struct {
	Import string
	Tokens []string
}

// importRules is checked in order. Tokens are plain substrings; a match
// anywhere in the file (comments, strings, the import line itself) counts.
var importRules = []ImportRule{
	{Import: "dart:convert", Tokens: []string{"jsonEncode", "jsonDecode", "convert", "utf8", "base64", "json."}},
	{Import: "dart:io", Tokens: []string{"Platform", "File(", "Directory(", "HttpClient", "Process.", "stdin", "stdout", "stderr"}},
	{Import: "dart:async", Tokens: []string{"Timer", "Completer", "StreamController", "StreamSubscription", "Future.", "Stream."}},
	{Import: "dart:math", Tokens: []string{"math.", "Random", "sqrt", "sin", "cos", "tan", "pi", "e", "max", "min"}},
	{Import: "dart:typed_data", Tokens: []string{"Uint8List", "Int32List", "Float64List", "ByteData"}},
	{Import: "dart:ui", Tokens: []string{"ui.", "Color(", "Offset(", "Size(", "Rect."}},
}

// ImportRules returns a copy of the import table.
func ImportRules() []ImportRule {
	out := make([]ImportRule, len(importRules))
	copy(out, importRules)
	return out
}

// CheckImports reports dart: imports none of whose usage tokens occur in the file.
func CheckImports(file domain.SourceFile) []domain.Issue {
	var issues []domain.Issue

	for _, rule := range importRules {
		stmt := "import '" + rule.Import + "'"
		idx := strings.Index(file.Content, stmt)
		if idx < 0 {
			continue
		}
		if containsAny(file.Content, rule.Tokens) {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Category: domain.CategoryUnusedImport,
			File:     file.Path,
			Line:     lineAt(file.Content, idx),
			Message:  fmt.Sprintf("%s imported but not used", rule.Import),
		})
	}

	return issues
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// lineAt returns the 1-based line number of byte offset off.
func lineAt(s string, off int) int {
	return strings.Count(s[:off], "\n") + 1
}
