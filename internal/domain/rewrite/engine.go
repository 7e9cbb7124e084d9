// Package rewrite holds the ordered table of text rules that silence
// specific Dart analyzer diagnostics. Rules are regex and line based; none
// of them parse Dart.
package rewrite

// Engine applies the enabled subset of the rule table in table order.
type Engine struct {
	rules []Rule
}

// New returns an engine with every rule except the named ones.
func New(disabled ...string) *Engine {
	skip := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		skip[d] = true
	}
	e := &Engine{}
	for _, r := range table {
		if !skip[r.Name()] {
			e.rules = append(e.rules, r)
		}
	}
	return e
}

// Apply runs every rule once, in order, and returns the resulting text along
// with the names of the rules that changed it.
func (e *Engine) Apply(text string) (string, []string) {
	var changed []string
	for _, r := range e.rules {
		next := r.Apply(text)
		if next != text {
			changed = append(changed, r.Name())
			text = next
		}
	}
	return text, changed
}

// Rules returns the enabled rules in execution order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Rules returns the full table in execution order.
func Rules() []Rule {
	return New().Rules()
}

// Names returns the rule names in execution order.
func Names() []string {
	names := make([]string, len(table))
	for i, r := range table {
		names[i] = r.Name()
	}
	return names
}

// Apply runs the full table minus the disabled rules.
func Apply(text string, disabled ...string) (string, []string) {
	return New(disabled...).Apply(text)
}
