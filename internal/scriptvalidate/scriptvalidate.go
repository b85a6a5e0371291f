// Package scriptvalidate is a structural, AST-level gate over a script's
// shape without a full TypeScript parser: regexp and balanced-delimiter
// scanning over the token stream.
package scriptvalidate

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a violation.
type Kind string

const (
	KindImportNotAllowed     Kind = "import_not_allowed"
	KindDefaultExportMissing Kind = "default_export_missing"
	KindDefaultExportShape   Kind = "default_export_shape"
	KindDisallowedType       Kind = "disallowed_type"
)

// Violation is one structural finding.
type Violation struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

// Result collects every violation found. A script with a non-empty Result
// is still saved by internal/scriptstore; the store never blocks
// persistence on validation.
type Result struct {
	Violations []Violation
}

// Valid reports whether the script had no structural violations.
func (r Result) Valid() bool { return len(r.Violations) == 0 }

// allowedImports is the import whitelist a script's source may reference.
var allowedImports = []string{"@datocms/*", "datocms-*", "./schema"}

// Validate runs all structural checks and returns every violation found;
// it never stops at the first one.
func Validate(source string) Result {
	var violations []Violation
	violations = append(violations, checkImports(source)...)
	violations = append(violations, checkDefaultExport(source)...)
	violations = append(violations, checkAnyUnknown(source)...)
	return Result{Violations: violations}
}

var importRE = regexp.MustCompile(`(?m)(?:import|export)(?:\s+type)?\s+(?:[^'"();]*from\s+)?['"]([^'"]+)['"]`)

func checkImports(source string) []Violation {
	var out []Violation
	for _, loc := range importRE.FindAllStringSubmatchIndex(source, -1) {
		spec := source[loc[2]:loc[3]]
		if importAllowed(spec) {
			continue
		}
		line, col := lineCol(source, loc[2])
		out = append(out, Violation{
			Kind:    KindImportNotAllowed,
			Message: fmt.Sprintf("import %q is not in the allowed package list", spec),
			Line:    line,
			Column:  col,
		})
	}
	return out
}

func importAllowed(spec string) bool {
	for _, pattern := range allowedImports {
		switch {
		case strings.HasSuffix(pattern, "/*"):
			if strings.HasPrefix(spec, pattern[:len(pattern)-1]) {
				return true
			}
		case strings.HasSuffix(pattern, "*"):
			if strings.HasPrefix(spec, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		default:
			if spec == pattern {
				return true
			}
		}
	}
	return false
}

var (
	defaultExportRE   = regexp.MustCompile(`export\s+default\s+`)
	identifierRE      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
	paramTypeClientRE = regexp.MustCompile(`:\s*(Client|ReturnType<\s*typeof\s+buildClient\s*>)\b`)
)

func checkDefaultExport(source string) []Violation {
	loc := defaultExportRE.FindStringIndex(source)
	if loc == nil {
		line, col := lineCol(source, 0)
		return []Violation{{
			Kind:    KindDefaultExportMissing,
			Message: "script has no default export",
			Line:    line,
			Column:  col,
		}}
	}

	rest := source[loc[1]:]
	line, col := lineCol(source, loc[1])
	shape := violationAt(line, col)

	rest = strings.TrimLeft(rest, " \t")
	isAsync := false
	if strings.HasPrefix(rest, "async") {
		isAsync = true
		rest = strings.TrimLeft(rest[len("async"):], " \t")
	}

	switch {
	case strings.HasPrefix(rest, "function"):
		return validateFunctionShape(rest[len("function"):], isAsync, shape)
	case strings.HasPrefix(rest, "("):
		return validateArrowShape(rest, isAsync, shape)
	default:
		m := identifierRE.FindString(rest)
		if m == "" {
			return []Violation{shape(KindDefaultExportShape, "default export is neither a function nor a resolvable identifier")}
		}
		return validateIdentifierExport(source, m, shape)
	}
}

// violationAt returns a constructor bound to a fixed line/column, so the
// call sites below stay short.
func violationAt(line, col int) func(kind Kind, msg string) Violation {
	return func(kind Kind, msg string) Violation {
		return Violation{Kind: kind, Message: msg, Line: line, Column: col}
	}
}

func validateFunctionShape(afterFunction string, isAsync bool, shape func(Kind, string) Violation) []Violation {
	afterFunction = strings.TrimLeft(afterFunction, " \t")
	// Skip an optional function name.
	if m := identifierRE.FindString(afterFunction); m != "" {
		afterFunction = afterFunction[len(m):]
	}
	afterFunction = strings.TrimLeft(afterFunction, " \t")
	if !strings.HasPrefix(afterFunction, "(") {
		return []Violation{shape(KindDefaultExportShape, "default export function has no parameter list")}
	}
	params, rest, ok := splitBalanced(afterFunction, '(', ')')
	if !ok {
		return []Violation{shape(KindDefaultExportShape, "default export function has an unbalanced parameter list")}
	}
	returnType := returnTypeBefore(rest, "{")
	return validateShape(params, isAsync, returnType, shape)
}

func validateArrowShape(text string, isAsync bool, shape func(Kind, string) Violation) []Violation {
	params, rest, ok := splitBalanced(text, '(', ')')
	if !ok {
		return []Violation{shape(KindDefaultExportShape, "default export arrow function has an unbalanced parameter list")}
	}
	returnType := returnTypeBefore(rest, "=>")
	return validateShape(params, isAsync, returnType, shape)
}

func validateIdentifierExport(source, name string, shape func(Kind, string) Violation) []Violation {
	declRE := regexp.MustCompile(`(async\s+)?function\s+` + regexp.QuoteMeta(name) + `\s*\(|(?:const|let|var)\s+` + regexp.QuoteMeta(name) + `\s*=\s*(async\s+)?\(`)
	loc := declRE.FindStringSubmatchIndex(source)
	if loc == nil {
		return []Violation{shape(KindDefaultExportShape, fmt.Sprintf("default export identifier %q has no local function declaration", name))}
	}
	isAsync := loc[2] != -1 || loc[4] != -1

	openParen := strings.Index(source[loc[1]-1:], "(")
	start := loc[1] - 1 + openParen
	rest := source[start:]
	params, after, ok := splitBalanced(rest, '(', ')')
	if !ok {
		return []Violation{shape(KindDefaultExportShape, fmt.Sprintf("default export identifier %q has an unbalanced parameter list", name))}
	}
	returnType := returnTypeBefore(after, "{")
	if returnType == "" {
		returnType = returnTypeBefore(after, "=>")
	}
	return validateShape(params, isAsync, returnType, shape)
}

func validateShape(params string, isAsync bool, returnType string, shape func(Kind, string) Violation) []Violation {
	var out []Violation
	args := splitTopLevel(params)
	if len(args) != 1 {
		out = append(out, shape(KindDefaultExportShape, fmt.Sprintf("default export function must take exactly one parameter, found %d", len(args))))
	} else if !paramTypeClientRE.MatchString(args[0]) {
		out = append(out, shape(KindDefaultExportShape, "default export parameter must be typed Client or ReturnType<typeof buildClient>"))
	}
	if !isAsync && !strings.Contains(returnType, "Promise<") {
		out = append(out, shape(KindDefaultExportShape, "default export function must be async or declare an explicit Promise<...> return type"))
	}
	return out
}

// returnTypeBefore returns the text between a leading ":" (if present) and
// the first occurrence of stop, used to pull a TypeScript return-type
// annotation out of "): Promise<void> {" or "): Promise<void> =>".
func returnTypeBefore(s, stop string) string {
	idx := strings.Index(s, stop)
	if idx < 0 {
		return ""
	}
	head := strings.TrimSpace(s[:idx])
	head = strings.TrimPrefix(head, ":")
	return strings.TrimSpace(head)
}

// splitBalanced finds the first open rune in s (must be at s[0]) and
// returns the text strictly inside the matching close, plus everything
// after the close.
func splitBalanced(s string, open, close byte) (inner, after string, ok bool) {
	if len(s) == 0 || s[0] != open {
		return "", "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// splitTopLevel splits a parameter list on commas that are not nested
// inside (), [], {}, or <>, and drops empty/whitespace-only entries so a
// zero-argument list reports zero parameters, not one.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])

	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripLiteralsAndComments blanks out string/template literals and
// comments (preserving line breaks and length) so the any/unknown scan
// below never fires on text inside them.
func stripLiteralsAndComments(source string) string {
	var b strings.Builder
	b.Grow(len(source))
	inLine, inBlock := false, false
	var quote byte

	for i := 0; i < len(source); i++ {
		c := source[i]

		if inLine {
			if c == '\n' {
				inLine = false
				b.WriteByte(c)
			} else {
				b.WriteByte(' ')
			}
			continue
		}
		if inBlock {
			if c == '*' && i+1 < len(source) && source[i+1] == '/' {
				inBlock = false
				b.WriteString("  ")
				i++
			} else if c == '\n' {
				b.WriteByte(c)
			} else {
				b.WriteByte(' ')
			}
			continue
		}
		if quote != 0 {
			if c == '\\' && i+1 < len(source) {
				b.WriteString("  ")
				i++
				continue
			}
			if c == quote {
				quote = 0
				b.WriteByte(' ')
			} else if c == '\n' {
				b.WriteByte(c)
			} else {
				b.WriteByte(' ')
			}
			continue
		}

		if c == '/' && i+1 < len(source) && source[i+1] == '/' {
			inLine = true
			b.WriteString("  ")
			i++
			continue
		}
		if c == '/' && i+1 < len(source) && source[i+1] == '*' {
			inBlock = true
			b.WriteString("  ")
			i++
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			quote = c
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

var anyUnknownRE = regexp.MustCompile(`\b(any|unknown)\b`)

func checkAnyUnknown(source string) []Violation {
	scrubbed := stripLiteralsAndComments(source)
	var out []Violation
	for _, loc := range anyUnknownRE.FindAllStringIndex(scrubbed, -1) {
		line, col := lineCol(source, loc[0])
		out = append(out, Violation{
			Kind:    KindDisallowedType,
			Message: fmt.Sprintf("disallowed type keyword %q", scrubbed[loc[0]:loc[1]]),
			Line:    line,
			Column:  col,
		})
	}
	return out
}

func lineCol(source string, offset int) (line, col int) {
	line = 1
	lastNewline := -1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, offset - lastNewline
}
