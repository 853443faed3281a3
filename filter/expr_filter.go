// Package filter narrows an episode listing with expr-lang expressions such as
// `Season > 0 and not contains(Title, "recap")`.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
	"github.com/samber/lo"

	"github.com/s0up4200/tvdb-episodes/episode"
)

// ExprFilter represents a compiled expr filter
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression. The expression must evaluate to a bool.
func Compile(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(episode.Entry{})),
		expr.AsBool(),
	)
	if err != nil {
		compileErr := &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			compileErr.Reason = fileErr.Message
			compileErr.Column = fileErr.Column
			compileErr.Snippet = fileErr.Snippet
		}
		return nil, compileErr
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// environment exposes one entry plus the string helpers to an expression
func environment(entry episode.Entry) map[string]any {
	ep := entry.Episode
	return map[string]any{
		// Displayed numbering
		"Season": entry.Season,
		"Number": entry.Number,
		"Title":  entry.Title,
		"Label":  entry.Label,

		// Raw numbering; DVD values fall back to aired ones
		"AiredSeason":  ep.AiredSeason,
		"AiredEpisode": ep.AiredEpisodeNumber,
		"DVDSeason":    lo.FromPtrOr(ep.DVDSeason, ep.AiredSeason),
		"DVDEpisode":   lo.FromPtrOr(ep.DVDEpisodeNumber, ep.AiredEpisodeNumber),
		"HasDVD":       ep.DVDSeason != nil || ep.DVDEpisodeNumber != nil,
		"HasTitle":     entry.Title != "",

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Match evaluates the filter against a single entry
func (f *ExprFilter) Match(entry episode.Entry) (bool, error) {
	result, err := expr.Run(f.program, environment(entry))
	if err != nil {
		return false, newEvaluationError(f.expr, entry, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, newEvaluationError(f.expr, entry, fmt.Errorf("expression returned %T, not bool", result))
	}

	return matched, nil
}

// Apply keeps the entries matching the filter, preserving their order
func (f *ExprFilter) Apply(entries []episode.Entry) ([]episode.Entry, error) {
	kept := make([]episode.Entry, 0, len(entries))
	for _, entry := range entries {
		matched, err := f.Match(entry)
		if err != nil {
			return nil, err
		}
		if matched {
			kept = append(kept, entry)
		}
	}
	return kept, nil
}

// String returns the original expression
func (f *ExprFilter) String() string {
	return f.expr
}

// Resolve picks the filter expression: an explicit expression beats a named preset.
// It returns "" when neither is set.
func Resolve(expression, preset string, presets map[string]string) (string, error) {
	if expression != "" {
		return expression, nil
	}

	if preset != "" {
		if presetExpr, ok := presets[preset]; ok {
			return presetExpr, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}
