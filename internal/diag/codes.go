package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are allocated per phase:
// 1000 lexical, 2000 syntactic, 3000 semantic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectToken       Code = 2003
	SynTagMismatch       Code = 2004
	SynUnclosedDelimiter Code = 2005
	SynBadTemplate       Code = 2006

	// Semantic
	SemUndefinedVariable Code = 3001
	SemTypeMismatch      Code = 3002
	SemBadOperand        Code = 3003
	SemNotCallable       Code = 3004
	SemBadAssignTarget   Code = 3005
	SemUnknownProp       Code = 3006
)

// ID returns the stable textual identifier, e.g. LUM2004.
func (c Code) ID() string {
	return fmt.Sprintf("LUM%04d", uint16(c))
}
