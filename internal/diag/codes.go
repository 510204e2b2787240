package diag

import (
	"fmt"
)

// Code identifies a diagnostic category. Ranges are reserved per stage:
// 1xxx lexer, 15xx structurer, 2xxx parser, 3xxx resolver, 4xxx codegen.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Structurer
	StructUnbalancedDelimiter Code = 1501

	// Parser
	ParseInvalidNodeName            Code = 2001
	ParseDuplicateReservedAttribute Code = 2002
	ParseUnexpectedToken            Code = 2003
	ParseExpectChildrenOrSemi       Code = 2004
	ParseExpectAttrValue            Code = 2005
	ParseExpectExpression           Code = 2006
	ParseExpectControlHeader        Code = 2007
	ParseExpectClosureParam         Code = 2008

	// Resolver
	ResolveConflictingAttribute Code = 3001
	ResolveIllegalChildren      Code = 3002
	ResolveUnknownDirective     Code = 3003

	// Codegen
	GenMalformedExpression Code = 4001
)

var codeIDs = map[Code]string{
	UnknownCode: "UNKNOWN",

	LexUnknownChar:        "LEX_UNKNOWN_CHAR",
	LexUnterminatedString: "LEX_UNTERMINATED_STRING",

	StructUnbalancedDelimiter: "UNBALANCED_DELIMITER",

	ParseInvalidNodeName:            "INVALID_NODE_NAME",
	ParseDuplicateReservedAttribute: "DUPLICATE_RESERVED_ATTRIBUTE",
	ParseUnexpectedToken:            "UNEXPECTED_TOKEN",
	ParseExpectChildrenOrSemi:       "EXPECT_CHILDREN_OR_SEMI",
	ParseExpectAttrValue:            "EXPECT_ATTR_VALUE",
	ParseExpectExpression:           "EXPECT_EXPRESSION",
	ParseExpectControlHeader:        "EXPECT_CONTROL_HEADER",
	ParseExpectClosureParam:         "EXPECT_CLOSURE_PARAM",

	ResolveConflictingAttribute: "CONFLICTING_ATTRIBUTE",
	ResolveIllegalChildren:      "ILLEGAL_CHILDREN",
	ResolveUnknownDirective:     "UNKNOWN_DIRECTIVE",

	GenMalformedExpression: "MALFORMED_EXPRESSION",
}

// ID returns the stable symbolic name of the code, used in JSON output and
// tests.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}

func (c Code) String() string {
	return fmt.Sprintf("MV%04d", uint16(c))
}
