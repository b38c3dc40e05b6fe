package scanner

import (
	"fmt"
	"regexp"
)

// Pattern is a match expression with exactly one capture group holding the
// icon name.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// DefaultPatterns are applied to every candidate file.
var DefaultPatterns = []Pattern{
	{Name: "name-double", Expr: regexp.MustCompile(`name="([^"]+)"`)},
	{Name: "name-single", Expr: regexp.MustCompile(`name='([^']+)'`)},
	{Name: "binding-double", Expr: regexp.MustCompile(`\[(?:name|icon)\]="([^"]+)"`)},
	{Name: "binding-single", Expr: regexp.MustCompile(`\[(?:name|icon)\]='([^']+)'`)},
	{Name: "icon-double", Expr: regexp.MustCompile(`icon="([^"]+)"`)},
	{Name: "icon-single", Expr: regexp.MustCompile(`icon='([^']+)'`)},
}

// CompilePatterns compiles user expressions into patterns named extra-1, extra-2, ...
func CompilePatterns(exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("pattern %q must have exactly one capture group, has %d", expr, re.NumSubexp())
		}
		patterns = append(patterns, Pattern{Name: fmt.Sprintf("extra-%d", i+1), Expr: re})
	}
	return patterns, nil
}

// Captures calls fn with the group value of every non-overlapping match in text.
func (p Pattern) Captures(text string, fn func(value string)) {
	for _, m := range p.Expr.FindAllStringSubmatch(text, -1) {
		fn(m[1])
	}
}
