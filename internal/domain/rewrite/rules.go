package rewrite

import (
	"regexp"
	"strings"

	"github.com/fatih/camelcase"
)

const deprecatedSuppression = " // ignore: deprecated_member_use"

// table is the ordered rule set. Order is significant: later rules see the
// text earlier rules left behind.
var table = []Rule{
	substitution{
		name:     "unnecessary_brace_in_string_interps",
		desc:     "Collapse ${identifier} to $identifier",
		re:       regexp.MustCompile(`\$\{(\w+)\}`),
		template: "$$${1}",
	},
	substitution{
		name:     "use_super_parameters",
		desc:     "Replace Key? key constructor parameters with super.key",
		re:       regexp.MustCompile(`(\s+const\s+\w+\([^)]*?)Key\?\s+key([^)]*?\))`),
		template: "${1}super.key${2}",
	},
	prologue{
		name: "library_private_types_in_public_api",
		desc: "Suppress private State subclasses at file level",
		trigger: func(text string) bool {
			return strings.Contains(text, "class _") && strings.Contains(text, "extends State<")
		},
		line: "// ignore_for_file: library_private_types_in_public_api",
	},
	transform{
		name: "prefer_final_fields",
		desc: "Make private bool fields initialized with a literal final",
		fn:   preferFinalFields,
	},
	transform{
		name: "prefer_conditional_assignment",
		desc: "Rewrite if (x == null) { x = v; } to x ??= v;",
		fn:   conditionalAssignment,
	},
	transform{
		name: "unnecessary_import",
		desc: "Drop imports re-exported by a broader Flutter import",
		fn:   unnecessaryImports,
	},
	libraryPrefix("AppLogger"),
	transform{
		name: "use_build_context_synchronously",
		desc: "Guard BuildContext use after await with a mounted check",
		fn:   mountedGuards,
	},
	transform{
		name: "unnecessary_cast",
		desc: "Strip redundant Map/List casts",
		fn: func(text string) string {
			text = strings.ReplaceAll(text, " as Map<String, dynamic>?", "")
			return strings.ReplaceAll(text, " as List<dynamic>", "")
		},
	},
	transform{
		name: "dead_null_aware_expression",
		desc: "Rewrite null ?? y to y",
		fn:   deadNullAware,
	},
	transform{
		name: "unnecessary_null_comparison",
		desc: "Drop x != null guards joined with &&",
		fn: func(text string) string {
			text = nullGuardLeft.ReplaceAllString(text, "")
			return nullGuardRight.ReplaceAllString(text, "")
		},
	},
	substitution{
		name:     "avoid_types_as_parameter_names",
		desc:     "Rename a lone sum parameter to total",
		re:       regexp.MustCompile(`(\()\s*sum\s*(\))`),
		template: "${1}total${2}",
	},
	transform{
		name: "deprecated_radio_members",
		desc: "Suppress deprecated Radio groupValue/onChanged members",
		fn:   radioSuppressions,
	},
	substitution{
		name:     "deprecated_form_field_value",
		desc:     "Rename the value: argument to initialValue:",
		re:       regexp.MustCompile(`(\s+)value:`),
		template: "${1}initialValue:",
	},
	substitution{
		name:     "deprecated_on_pop_invoked",
		desc:     "Rename onPopInvoked to onPopInvokedWithResult",
		re:       regexp.MustCompile(`onPopInvoked(?:WithResult)?`),
		template: "onPopInvokedWithResult",
	},
	transform{
		name: "deprecated_desired_accuracy",
		desc: "Suppress deprecated desiredAccuracy arguments",
		fn:   desiredAccuracySuppressions,
	},
	transform{
		name: "unused_field",
		desc: "Comment out unused _currentPage and _totalWithdrawn fields",
		fn:   unusedFields("_currentPage", "_totalWithdrawn"),
	},
	transform{
		name: "unused_element",
		desc: "Comment out the unused _onDidReceiveLocalNotification method",
		fn:   unusedElement,
	},
	transform{
		name: "unused_local_variable",
		desc: "Comment out the unused isPassenger local",
		fn:   unusedLocal,
	},
	prologue{
		name: "avoid_web_libraries_in_flutter",
		desc: "Suppress web library diagnostics at file level",
		trigger: func(text string) bool {
			return strings.Contains(text, "dart:js")
		},
		line: "// ignore_for_file: deprecated_member_use, avoid_web_libraries_in_flutter",
	},
}

var boolField = regexp.MustCompile(`(\s+)bool _(\w+) = (true|false);`)

func preferFinalFields(text string) string {
	return replaceMatches(boolField, text, func(m []int) (string, bool) {
		if strings.HasSuffix(text[:m[0]], "final") {
			return "", false
		}
		return group(text, m, 1) + "final bool _" + group(text, m, 2) + " = " + group(text, m, 3) + ";", true
	})
}

var nullCheckAssign = regexp.MustCompile(`if\s*\((\w+)\s*==\s*null\)\s*\{\s*(\w+)\s*=\s*([^;]+);\s*\}`)

// conditionalAssignment only fires when the assigned name is the tested one.
func conditionalAssignment(text string) string {
	return replaceMatches(nullCheckAssign, text, func(m []int) (string, bool) {
		name := group(text, m, 1)
		if group(text, m, 2) != name {
			return "", false
		}
		return name + " ??= " + group(text, m, 3) + ";", true
	})
}

const (
	typedDataImport  = "import 'dart:typed_data';"
	foundationImport = "import 'package:flutter/foundation.dart'"
	materialImport   = "import 'package:flutter/material.dart'"
)

// unnecessaryImports evaluates presence on the text as it was before any
// line is dropped.
func unnecessaryImports(text string) string {
	hasFoundation := strings.Contains(text, foundationImport)
	hasMaterial := strings.Contains(text, materialImport)
	return mapLines(text, func(i int, lines []string) []string {
		line := lines[i]
		if hasFoundation && strings.Contains(line, typedDataImport) {
			return nil
		}
		if hasMaterial && strings.Contains(line, foundationImport+";") {
			return nil
		}
		return []string{line}
	})
}

// libraryPrefix renames an UpperCamel import prefix to snake_case across
// the import directive and every prefixed use.
func libraryPrefix(prefix string) Rule {
	snake := snakeCase(prefix)
	importAs := regexp.MustCompile(`import '([^']+)' as ` + regexp.QuoteMeta(prefix) + `;`)
	uses := regexp.MustCompile(regexp.QuoteMeta(prefix) + `\.`)
	return transform{
		name: "library_prefixes",
		desc: "Rename the " + prefix + " import prefix to " + snake,
		fn: func(text string) string {
			text = importAs.ReplaceAllString(text, "import '${1}' as "+snake+";")
			return uses.ReplaceAllLiteralString(text, snake+".")
		},
	}
}

func snakeCase(name string) string {
	return strings.ToLower(strings.Join(camelcase.Split(name), "_"))
}

const mountedGuard = "if (!context.mounted) return;"

var (
	contextTriggers = []string{"Navigator.", "ScaffoldMessenger.", "showDialog", "context"}
	existingGuards  = []string{"if (!mounted)", "if (!context.mounted)"}
)

func mountedGuards(text string) string {
	return mapLines(text, func(i int, lines []string) []string {
		line := lines[i]
		if !strings.Contains(line, "await ") || i+1 >= len(lines) {
			return []string{line}
		}
		next := lines[i+1]
		if !containsAny(next, contextTriggers) || containsAny(next, existingGuards) {
			return []string{line}
		}
		return []string{line, leadingSpace(line) + mountedGuard}
	})
}

var nullAware = regexp.MustCompile(`(\w+) \?\? (\w+)`)

// deadNullAware only rewrites when the left operand is the literal null;
// x ?? y is left alone.
func deadNullAware(text string) string {
	return replaceMatches(nullAware, text, func(m []int) (string, bool) {
		if group(text, m, 1) != "null" {
			return "", false
		}
		return group(text, m, 2), true
	})
}

var (
	nullGuardLeft  = regexp.MustCompile(`\w+ != null &&`)
	nullGuardRight = regexp.MustCompile(`&& \w+ != null`)
)

// radioWindow is how many characters before a line's first occurrence
// "Radio" is searched for.
const radioWindow = 200

func radioSuppressions(text string) string {
	if !strings.Contains(text, "Radio<") {
		return text
	}
	if !strings.Contains(text, "groupValue:") && !strings.Contains(text, "onChanged:") {
		return text
	}
	return mapLines(text, func(i int, lines []string) []string {
		line := lines[i]
		if strings.Contains(line, deprecatedSuppression) {
			return []string{line}
		}
		if strings.Contains(line, "groupValue:") {
			return []string{line + deprecatedSuppression}
		}
		if strings.Contains(line, "onChanged:") {
			idx := strings.Index(text, line)
			if strings.Contains(tail(text[:idx], radioWindow), "Radio") {
				return []string{line + deprecatedSuppression}
			}
		}
		return []string{line}
	})
}

func desiredAccuracySuppressions(text string) string {
	if !strings.Contains(text, "desiredAccuracy:") {
		return text
	}
	return mapLines(text, func(i int, lines []string) []string {
		line := lines[i]
		if strings.Contains(line, "desiredAccuracy:") && !strings.Contains(line, deprecatedSuppression) {
			return []string{line + deprecatedSuppression}
		}
		return []string{line}
	})
}

func unusedFields(names ...string) func(string) string {
	patterns := make([]*regexp.Regexp, len(names))
	for i, n := range names {
		patterns[i] = regexp.MustCompile(`(\s+)([\w<>?]+) ` + regexp.QuoteMeta(n))
	}
	return func(text string) string {
		for i, re := range patterns {
			name := names[i]
			text = replaceMatches(re, text, func(m []int) (string, bool) {
				if commentedAt(text, m[4]) {
					return "", false
				}
				return group(text, m, 1) + "// " + group(text, m, 2) + " " + name + " // unused", true
			})
		}
		return text
	}
}

// unusedMethod stops at the first closing brace; bodies with nested braces
// are cut short.
var unusedMethod = regexp.MustCompile(`(\s+)(Future<void> _onDidReceiveLocalNotification[^}]+\})`)

func unusedElement(text string) string {
	return replaceMatches(unusedMethod, text, func(m []int) (string, bool) {
		if commentedAt(text, m[4]) {
			return "", false
		}
		body := strings.ReplaceAll(group(text, m, 2), "\n", "\n// ")
		return group(text, m, 1) + "// " + body + " // unused", true
	})
}

var unusedPassenger = regexp.MustCompile(`(\s+)(final bool isPassenger = [^;]+;)`)

func unusedLocal(text string) string {
	return replaceMatches(unusedPassenger, text, func(m []int) (string, bool) {
		if commentedAt(text, m[4]) {
			return "", false
		}
		return group(text, m, 1) + "// final bool isPassenger = ...; // unused", true
	})
}
