package handhistory

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. A *ParseError matches exactly one of the first three via
// errors.Is depending on its Kind.
var (
	ErrHeader       = errors.New("malformed hand history header")
	ErrBody         = errors.New("malformed hand history body")
	ErrUnknownToken = errors.New("unknown vocabulary token")

	ErrNotParsed   = errors.New("hand history not parsed")
	ErrUnknownRoom = errors.New("unrecognised poker room")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	KindHeader ErrorKind = iota + 1
	KindBody
	KindVocabulary
)

func (k ErrorKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindBody:
		return "body"
	case KindVocabulary:
		return "vocabulary"
	default:
		return "unknown"
	}
}

// ParseError is returned for any hand that cannot be parsed. It is fatal for
// that hand.
type ParseError struct {
	Kind    ErrorKind
	Section Section
	LineNo  int // 1-based, 0 when unknown
	Line    string
	Err     error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(" parse error")
	if e.Kind == KindBody {
		fmt.Fprintf(&sb, " in %s", e.Section)
	}
	if e.LineNo > 0 {
		fmt.Fprintf(&sb, " at line %d", e.LineNo)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Line != "" {
		fmt.Fprintf(&sb, " (%q)", e.Line)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is match the sentinel for the error kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrHeader:
		return e.Kind == KindHeader
	case ErrBody:
		return e.Kind == KindBody
	case ErrUnknownToken:
		return e.Kind == KindVocabulary
	}
	return false
}

// HeaderError reports a header that does not match the room's expected shape.
func HeaderError(line string, format string, args ...any) *ParseError {
	return &ParseError{
		Kind: KindHeader,
		Line: line,
		Err:  fmt.Errorf(format, args...),
	}
}

// BodyError reports an unexpected or malformed line while parsing the body.
func BodyError(section Section, line string, err error) *ParseError {
	return &ParseError{
		Kind:    KindBody,
		Section: section,
		Line:    line,
		Err:     err,
	}
}

// VocabularyError reports a token missing from a closed vocabulary.
func VocabularyError(vocabulary, token string) *ParseError {
	return &ParseError{
		Kind: KindVocabulary,
		Err:  fmt.Errorf("%s %q", vocabulary, token),
	}
}

// atLine fills in line information on a ParseError that has none yet, and
// converts anything else into a body error.
func atLine(err error, section Section, lineNo int, line string) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return &ParseError{Kind: KindBody, Section: section, LineNo: lineNo, Line: line, Err: err}
	}
	if pe.LineNo == 0 {
		pe.LineNo = lineNo
	}
	if pe.Line == "" {
		pe.Line = line
	}
	return pe
}
