package bril2json

import (
	"github.com/alecthomas/participle/v2"

	"brilopt/internal/cerr"
)

var surfaceParser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(surfaceLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		cerr.Invariant("bril2json: surface grammar failed to build: %s", err)
	}
	return p
}

// parseSurface parses source in Bril's plain-text surface syntax into
// this package's grammar AST.
func parseSurface(name, source string) (*Program, error) {
	prog, err := surfaceParser.ParseString(name, source)
	if err != nil {
		return nil, cerr.Wrap(cerr.ParseError, err, "failed to parse %s as bril surface syntax", name)
	}
	return prog, nil
}
