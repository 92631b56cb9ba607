package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"relviz-backend/models"
)

var (
	// ErrMalformedInput marks input that is not syntactically valid JSON
	ErrMalformedInput = errors.New("malformed input")
	// ErrProcessing marks valid JSON whose shape does not match the relation schema
	ErrProcessing = errors.New("processing failure")
)

// InputError describes why an input document was rejected
type InputError struct {
	Kind   error // ErrMalformedInput or ErrProcessing
	Line   int   // 1-based, only for ErrMalformedInput
	Column int   // 1-based, only for ErrMalformedInput
	Offset int64 // byte offset, only for ErrMalformedInput
	Err    error
}

func (e *InputError) Error() string {
	if e.Kind == ErrMalformedInput && e.Line > 0 {
		return fmt.Sprintf("%v: line %d column %d (byte %d)", e.Err, e.Line, e.Column, e.Offset)
	}
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error
func (e *InputError) Is(target error) bool {
	return target == e.Kind
}

// ParseRelations decodes raw text into relation records.
// The document must be a JSON array; decoding stops at the first error.
func ParseRelations(raw []byte) ([]models.Relation, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &InputError{
			Kind: ErrMalformedInput,
			Line: 1, Column: 1,
			Err: errors.New("empty input"),
		}
	}

	var decoded []*models.Relation
	if err := json.Unmarshal(raw, &decoded); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			atEOF := syntaxErr.Error() == "unexpected end of JSON input"
			line, col := position(raw, syntaxErr.Offset, atEOF)
			return nil, &InputError{
				Kind:   ErrMalformedInput,
				Line:   line,
				Column: col,
				Offset: syntaxErr.Offset,
				Err:    err,
			}
		}
		return nil, &InputError{Kind: ErrProcessing, Err: err}
	}

	if decoded == nil {
		// literal null decodes without error
		return nil, &InputError{
			Kind: ErrProcessing,
			Err:  errors.New("expected a JSON array of relations, got null"),
		}
	}

	relations := make([]models.Relation, 0, len(decoded))
	for i, r := range decoded {
		if r == nil {
			return nil, &InputError{
				Kind: ErrProcessing,
				Err:  fmt.Errorf("relation %d is null, expected an object", i+1),
			}
		}
		relations = append(relations, *r)
	}
	return relations, nil
}

// position converts a byte offset into a 1-based line and rune column.
// json.SyntaxError.Offset points just past the offending byte; at end of
// input there is no offending byte and the position is the end itself.
func position(data []byte, offset int64, atEOF bool) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset > 0 && !atEOF {
		offset--
	}
	head := data[:offset]
	line := bytes.Count(head, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(head, '\n') + 1
	col := utf8.RuneCount(head[lineStart:]) + 1
	return line, col
}
