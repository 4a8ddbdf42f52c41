package trash

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/TheMartin/trash-lang/lexer"
	"github.com/TheMartin/trash-lang/parse"
)

// ParseError is the structured failure Parse reports (spec.md §6, §7): a
// position, the aggregated expectation set, a message, and an optional
// grammar context name set by the parser's Tagged productions. Its Error
// string follows spec.md §6's exact format: "error on line L:C: <message>[,
// expected A or B…][ while parsing <context>]".
type ParseError struct {
	Line, Column int
	Message      string
	Expectations []string
	Context      string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error on line %d:%d: %s", e.Line+1, e.Column+1, e.Message)
	if len(e.Expectations) > 0 {
		exp := make([]string, len(e.Expectations))
		copy(exp, e.Expectations)
		sort.Strings(exp)
		sb.WriteString(", expected ")
		sb.WriteString(joinOr(exp))
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, " while parsing %s", e.Context)
	}
	return sb.String()
}

func joinOr(xs []string) string {
	switch len(xs) {
	case 0:
		return ""
	case 1:
		return xs[0]
	default:
		return strings.Join(xs[:len(xs)-1], ", ") + " or " + xs[len(xs)-1]
	}
}

func parseErrorFrom(e parse.Error) *ParseError {
	pos, _ := e.Pos.(lexer.Position)
	return &ParseError{
		Line:         pos.Line,
		Column:       pos.Column,
		Message:      e.Message,
		Expectations: e.Expects(),
		Context:      e.Context,
	}
}

// lexErrorToParseError converts a lexer.Error (spec.md §4.2: "Failure of
// the lexer is reported as a parse error at the offending position") into
// the same ParseError shape Parse returns for grammar failures, so callers
// only ever handle one error type from Parse.
func lexErrorToParseError(err error) *ParseError {
	var le *lexer.Error
	if errors.As(err, &le) {
		return &ParseError{Line: le.Pos.Line, Column: le.Pos.Column, Message: le.Message}
	}
	return &ParseError{Message: err.Error()}
}
