package backendtest

import (
	"regexp"
	"strings"

	"github.com/platinummonkey/doclint/pkg/backend"
)

var (
	defRe       = regexp.MustCompile(`^(\s*)def\s+([A-Za-z_]\w*)\s*\(`)
	classRe     = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)\b`)
	decoratorRe = regexp.MustCompile(`^\s*@\s*([\w.]+)`)
	noqaRe      = regexp.MustCompile(`(?i)#\s*noqa`)
	stringRe    = regexp.MustCompile(`^[rRuUbBfF]{0,2}("""|'''|"|')`)
	initSelfRe  = regexp.MustCompile(`^\s*def\s+__init__\s*\(\s*self\s*,?\s*\)\s*(->\s*[^:]+)?:`)
)

// HeuristicDriver is a line-oriented missing-docstring scanner. It covers
// just enough of the D1xx family (module, class, method, function, init)
// to drive end to end tests without a real engine installed. It is not a
// substitute for one: it never parses Python, it pattern-matches lines.
type HeuristicDriver struct {
	DriverName    string
	DriverVersion string
}

func (d *HeuristicDriver) Name() string {
	if d.DriverName != "" {
		return d.DriverName
	}
	return backend.DriverPydocstyle
}

func (d *HeuristicDriver) Version() string {
	if d.DriverVersion != "" {
		return d.DriverVersion
	}
	return "6.3.0"
}

func (d *HeuristicDriver) Conventions() backend.Conventions {
	return DefaultConventions()
}

func (d *HeuristicDriver) Check(req backend.CheckRequest) ([]backend.Error, error) {
	lines := strings.Split(req.Source, "\n")

	var out []backend.Error
	if moduleMissingDocstring(lines) {
		out = append(out, backend.Error{
			Code:    "D100",
			Message: "Missing docstring in public module",
			Line:    1,
		})
	}

	type scope struct {
		indent  int
		isClass bool
	}
	var stack []scope
	var pending []string

	for i, raw := range lines {
		trimmed := strings.TrimSpace(stripComment(raw))
		if trimmed == "" {
			continue
		}

		if m := decoratorRe.FindStringSubmatch(raw); m != nil {
			pending = append(pending, m[1])
			continue
		}

		defM := defRe.FindStringSubmatch(raw)
		classM := classRe.FindStringSubmatch(raw)
		if defM == nil && classM == nil {
			pending = nil
			continue
		}

		decorators := pending
		pending = nil

		isClass := classM != nil
		var indent int
		var name string
		if isClass {
			indent = len(classM[1])
			name = classM[2]
		} else {
			indent = len(defM[1])
			name = defM[2]
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		inClass := len(stack) > 0 && stack[len(stack)-1].isClass
		stack = append(stack, scope{indent: indent, isClass: isClass})

		if skipName(name) {
			continue
		}
		if req.IgnoreDecorators != nil && matchesAny(req.IgnoreDecorators, decorators) {
			continue
		}
		honorNoqa := req.IgnoreInlineNoqa == nil || !*req.IgnoreInlineNoqa
		if honorNoqa && noqaRe.MatchString(raw) {
			continue
		}
		if hasDocstring(lines, i) {
			continue
		}

		line := i + 1
		switch {
		case isClass:
			out = append(out, backend.Error{
				Code:    "D101",
				Message: "Missing docstring in public class",
				Line:    line,
			})
		case name == "__init__":
			if req.IgnoreSelfOnlyInit != nil && *req.IgnoreSelfOnlyInit &&
				initSelfRe.MatchString(stripComment(raw)) {
				continue
			}
			out = append(out, backend.Error{
				Code:    "D107",
				Message: "Missing docstring in __init__",
				Line:    line,
			})
		case inClass:
			out = append(out, backend.Error{
				Code:    "D102",
				Message: "Missing docstring in public method",
				Line:    line,
			})
		default:
			out = append(out, backend.Error{
				Code:    "D103",
				Message: "Missing docstring in public function",
				Line:    line,
			})
		}
	}

	return out, nil
}

// moduleMissingDocstring reports whether the first meaningful line of the
// module is something other than a string literal.
func moduleMissingDocstring(lines []string) bool {
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return !stringRe.MatchString(trimmed)
	}
	return true
}

// hasDocstring reports whether the statement after the signature starting
// at lines[idx] is a string literal. The signature ends at the first line
// whose code portion ends with a colon.
func hasDocstring(lines []string, idx int) bool {
	end := idx
	for ; end < len(lines); end++ {
		code := strings.TrimSpace(stripComment(lines[end]))
		if strings.HasSuffix(code, ":") {
			break
		}
	}
	for i := end + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return stringRe.MatchString(trimmed)
	}
	return false
}

// stripComment drops everything from the first hash on. Good enough for
// the signature lines this driver inspects, wrong inside string literals.
func stripComment(ln string) string {
	if i := strings.Index(ln, "#"); i >= 0 {
		return ln[:i]
	}
	return ln
}

// skipName reports whether a definition is exempt from docstring checks.
// Private names are exempt, dunders are exempt except __init__.
func skipName(name string) bool {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") {
		return name != "__init__"
	}
	return strings.HasPrefix(name, "_")
}

func matchesAny(re *regexp.Regexp, names []string) bool {
	for _, n := range names {
		if re.MatchString(n) {
			return true
		}
	}
	return false
}
