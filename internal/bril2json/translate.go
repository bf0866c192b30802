package bril2json

import (
	"strconv"

	"brilopt/internal/cerr"
	"brilopt/internal/ir"
)

// toModule translates a parsed surface program into the IR, function by
// function, reusing ir.Build so surface and JSON input produce identical
// Instruction values for identical programs.
func toModule(prog *Program) (*ir.Module, error) {
	m := &ir.Module{}
	for _, function := range prog.Functions {
		fn, err := toFunction(function)
		if err != nil {
			return nil, err
		}
		m.Functions = append(m.Functions, fn)
	}
	return m, nil
}

func toFunction(f *Function) (*ir.Function, error) {
	fn := &ir.Function{Name: f.Name}
	for _, p := range f.Params {
		ty, err := toType(p.Type)
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, ir.Param{Name: p.Name, Type: ty})
	}

	var flat []ir.Instruction
	for _, item := range f.Items {
		if item.Label != nil {
			flat = append(flat, &ir.Label{Name: item.Label.Name})
			continue
		}
		instr, err := toInstruction(item.Instr)
		if err != nil {
			return nil, err
		}
		flat = append(flat, instr)
	}
	fn.Blocks = formBasicBlocks(flat)
	return fn, nil
}

func toInstruction(in *Instr) (ir.Instruction, error) {
	var destType ir.Type
	var err error
	if in.Type != nil {
		destType, err = toType(*in.Type)
		if err != nil {
			return nil, err
		}
	}

	var uses []any
	if in.Literal != nil {
		literal, err := toLiteral(in.Literal.Text, destType)
		if err != nil {
			return nil, err
		}
		uses = []any{literal}
	} else {
		for _, operand := range in.Operands {
			uses = append(uses, operandText(operand))
		}
	}

	dest := ""
	if in.Dest != nil {
		dest = *in.Dest
	}

	var instr ir.Instruction
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = cerr.Wrap(cerr.ParseError, asError(r), "unknown or malformed instruction %q", in.Op)
			}
		}()
		instr = ir.Build(in.Op, dest, destType, uses)
	}()
	return instr, err
}

// operandText returns an operand's underlying identifier text regardless
// of whether it was written as a plain reference or a dot-prefixed label
// target: ir.Build takes both as the same bare string.
func operandText(op *Operand) string {
	if op.Label != nil {
		return *op.Label
	}
	return *op.Name
}

func toType(name string) (ir.Type, error) {
	switch name {
	case "int":
		return ir.Int, nil
	case "bool":
		return ir.Bool, nil
	default:
		return "", cerr.New(cerr.ParseError, "unknown type %q", name)
	}
}

func toLiteral(text string, ty ir.Type) (any, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, cerr.Wrap(cerr.ParseError, err, "malformed integer literal %q", text)
		}
		return n, nil
	}
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return cerr.New(cerr.ParseError, "%v", r)
}

// formBasicBlocks mirrors internal/ir's json decoder: a label starts a
// new block when the current one is non-empty, and a terminator closes
// the current block.
func formBasicBlocks(instrs []ir.Instruction) []*ir.BasicBlock {
	var blocks []*ir.BasicBlock
	var current *ir.BasicBlock

	flush := func() {
		if current != nil {
			blocks = append(blocks, current)
		}
		current = nil
	}

	for _, instr := range instrs {
		if label, ok := instr.(*ir.Label); ok {
			if current != nil && (current.Label != nil || len(current.Instructions) > 0) {
				flush()
			}
			if current == nil {
				current = &ir.BasicBlock{}
			}
			current.Label = label
			continue
		}
		if current == nil {
			current = &ir.BasicBlock{}
		}
		current.Instructions = append(current.Instructions, instr)
		if instr.IsTerminator() {
			flush()
		}
	}
	flush()
	return blocks
}
