package ir

import "brilopt/internal/cerr"

// Type is a Bril type name, e.g. "int" or "bool".
type Type string

const (
	Int  Type = "int"
	Bool Type = "bool"
)

// BinaryOps are the two-operand arithmetic, comparison, and logical
// operators.
var BinaryOps = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true,
	"eq": true, "lt": true, "le": true, "gt": true, "ge": true,
	"and": true, "or": true, "xor": true,
}

// Instruction is the tagged-variant contract every Bril instruction kind
// implements. Concrete kinds are reached through a type switch rather
// than through further interface methods.
type Instruction interface {
	// Operator is the instruction's operator string, as it appears in the
	// JSON "op" field ("label" for a label pseudo-instruction).
	Operator() string
	// Dest reports the instruction's destination name, if it has one.
	Dest() (name string, ok bool)
	// SetDest rewrites the destination name in place. It panics on an
	// instruction with no destination slot (Print, Label, Jmp, Br).
	SetDest(name string)
	// DestType is the instruction's result type; only meaningful when
	// Dest reports ok.
	DestType() Type
	// Args are the ordered operand names this instruction reads. Const
	// reports none (its payload is a literal, not a name), and so does
	// Jmp (its operand is a label); Br reports only its condition, not
	// its labels.
	Args() []string
	IsLabel() bool
	IsTerminator() bool
}

// Const loads a literal value (an int64 or a bool) into Dest.
type Const struct {
	DestName string
	Ty       Type
	Literal  any
}

func (c *Const) Operator() string     { return "const" }
func (c *Const) Dest() (string, bool) { return c.DestName, true }
func (c *Const) SetDest(name string)  { c.DestName = name }
func (c *Const) DestType() Type       { return c.Ty }
func (c *Const) Args() []string       { return nil }
func (c *Const) IsLabel() bool        { return false }
func (c *Const) IsTerminator() bool   { return false }

// Id copies Src into Dest.
type Id struct {
	DestName string
	Ty       Type
	Src      string
}

func (i *Id) Operator() string     { return "id" }
func (i *Id) Dest() (string, bool) { return i.DestName, true }
func (i *Id) SetDest(name string)  { i.DestName = name }
func (i *Id) DestType() Type       { return i.Ty }
func (i *Id) Args() []string       { return []string{i.Src} }
func (i *Id) IsLabel() bool        { return false }
func (i *Id) IsTerminator() bool   { return false }

// Print has no destination; it exists purely for its side effect.
type Print struct {
	Arg string
}

func (p *Print) Operator() string     { return "print" }
func (p *Print) Dest() (string, bool) { return "", false }
func (p *Print) SetDest(string)       { cerr.Invariant("print has no destination slot") }
func (p *Print) DestType() Type       { return "" }
func (p *Print) Args() []string       { return []string{p.Arg} }
func (p *Print) IsLabel() bool        { return false }
func (p *Print) IsTerminator() bool   { return false }

// Label marks the start of a basic block; at most one leads any block.
type Label struct {
	Name string
}

func (l *Label) Operator() string     { return "label" }
func (l *Label) Dest() (string, bool) { return "", false }
func (l *Label) SetDest(string)       { cerr.Invariant("label has no destination slot") }
func (l *Label) DestType() Type       { return "" }
func (l *Label) Args() []string       { return nil }
func (l *Label) IsLabel() bool        { return true }
func (l *Label) IsTerminator() bool   { return false }

// Jmp is an unconditional jump to Target.
type Jmp struct {
	Target string
}

func (j *Jmp) Operator() string     { return "jmp" }
func (j *Jmp) Dest() (string, bool) { return "", false }
func (j *Jmp) SetDest(string)       { cerr.Invariant("jmp has no destination slot") }
func (j *Jmp) DestType() Type       { return "" }
func (j *Jmp) Args() []string       { return nil }
func (j *Jmp) IsLabel() bool        { return false }
func (j *Jmp) IsTerminator() bool   { return true }

// Br jumps to LabelT if Cond is true, LabelF otherwise.
type Br struct {
	Cond   string
	LabelT string
	LabelF string
}

func (b *Br) Operator() string     { return "br" }
func (b *Br) Dest() (string, bool) { return "", false }
func (b *Br) SetDest(string)       { cerr.Invariant("br has no destination slot") }
func (b *Br) DestType() Type       { return "" }
func (b *Br) Args() []string       { return []string{b.Cond} }
func (b *Br) IsLabel() bool        { return false }
func (b *Br) IsTerminator() bool   { return true }

// Binary covers every two-operand arithmetic, comparison, or logical op.
type Binary struct {
	Op       string
	DestName string
	Ty       Type
	Left     string
	Right    string
}

func (b *Binary) Operator() string     { return b.Op }
func (b *Binary) Dest() (string, bool) { return b.DestName, true }
func (b *Binary) SetDest(name string)  { b.DestName = name }
func (b *Binary) DestType() Type       { return b.Ty }
func (b *Binary) Args() []string       { return []string{b.Left, b.Right} }
func (b *Binary) IsLabel() bool        { return false }
func (b *Binary) IsTerminator() bool   { return false }

// Unary covers the single-operand "not" operator.
type Unary struct {
	Op       string
	DestName string
	Ty       Type
	Arg      string
}

func (u *Unary) Operator() string     { return u.Op }
func (u *Unary) Dest() (string, bool) { return u.DestName, true }
func (u *Unary) SetDest(name string)  { u.DestName = name }
func (u *Unary) DestType() Type       { return u.Ty }
func (u *Unary) Args() []string       { return []string{u.Arg} }
func (u *Unary) IsLabel() bool        { return false }
func (u *Unary) IsTerminator() bool   { return false }
