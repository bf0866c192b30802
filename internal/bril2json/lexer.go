package bril2json

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// surfaceLexer tokenizes Bril's plain-text surface syntax: the format
// bril2txt produces and bril2json's reference parser accepts, used here
// only as a fallback when no bril2json binary is on PATH. A leading "."
// is its own token so a label ("." Ident ":") can never be confused with
// a destination declaration (Ident ":" Ident "=").
var surfaceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[@.:;,(){}=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
