package ir

import (
	"encoding/json"
	"fmt"
	"io"

	"brilopt/internal/cerr"
)

type wireProgram struct {
	Functions []wireFunction `json:"functions"`
}

type wireFunction struct {
	Name   string      `json:"name"`
	Args   []wireArg   `json:"args,omitempty"`
	Instrs []wireInstr `json:"instrs"`
}

type wireArg struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireInstr struct {
	Label  string   `json:"label,omitempty"`
	Op     string   `json:"op,omitempty"`
	Dest   string   `json:"dest,omitempty"`
	Type   string   `json:"type,omitempty"`
	Args   []string `json:"args,omitempty"`
	Labels []string `json:"labels,omitempty"`
	Value  any      `json:"value,omitempty"`
}

// DecodeProgram reads a Bril JSON program and partitions each function's
// instructions into basic blocks.
func DecodeProgram(r io.Reader) (*Module, error) {
	var wp wireProgram
	if err := json.NewDecoder(r).Decode(&wp); err != nil {
		return nil, cerr.Wrap(cerr.ParseError, err, "invalid Bril JSON program")
	}

	mod := &Module{}
	for _, wf := range wp.Functions {
		fn := &Function{Name: wf.Name}
		for _, wa := range wf.Args {
			fn.Args = append(fn.Args, Param{Name: wa.Name, Type: Type(wa.Type)})
		}

		instrs := make([]Instruction, 0, len(wf.Instrs))
		for idx, wi := range wf.Instrs {
			instr, err := decodeInstr(wi)
			if err != nil {
				return nil, cerr.Wrap(cerr.ParseError, err, "function %q instruction %d", wf.Name, idx)
			}
			instrs = append(instrs, instr)
		}
		fn.Blocks = formBasicBlocks(instrs)
		mod.Functions = append(mod.Functions, fn)
	}
	return mod, nil
}

// EncodeProgram writes m back out as a Bril JSON program.
func EncodeProgram(w io.Writer, m *Module) error {
	wp := wireProgram{}
	for _, fn := range m.Functions {
		wf := wireFunction{Name: fn.Name}
		for _, p := range fn.Args {
			wf.Args = append(wf.Args, wireArg{Name: p.Name, Type: string(p.Type)})
		}
		for _, b := range fn.Blocks {
			if b.Label != nil {
				wf.Instrs = append(wf.Instrs, wireInstr{Label: b.Label.Name})
			}
			for _, instr := range b.Instructions {
				if instr == nil {
					continue
				}
				wf.Instrs = append(wf.Instrs, encodeInstr(instr))
			}
		}
		wp.Functions = append(wp.Functions, wf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wp); err != nil {
		return cerr.Wrap(cerr.ParseError, err, "encoding Bril JSON program")
	}
	return nil
}

func decodeInstr(wi wireInstr) (Instruction, error) {
	if wi.Op == "" {
		if wi.Label == "" {
			return nil, fmt.Errorf("instruction has neither \"op\" nor \"label\"")
		}
		return &Label{Name: wi.Label}, nil
	}

	switch wi.Op {
	case "const":
		literal, err := decodeLiteral(wi.Value, Type(wi.Type))
		if err != nil {
			return nil, err
		}
		return &Const{DestName: wi.Dest, Ty: Type(wi.Type), Literal: literal}, nil
	case "id":
		if len(wi.Args) < 1 {
			return nil, fmt.Errorf("id requires one argument")
		}
		return &Id{DestName: wi.Dest, Ty: Type(wi.Type), Src: wi.Args[0]}, nil
	case "print":
		if len(wi.Args) < 1 {
			return nil, fmt.Errorf("print requires one argument")
		}
		return &Print{Arg: wi.Args[0]}, nil
	case "jmp":
		if len(wi.Labels) < 1 {
			return nil, fmt.Errorf("jmp requires one label")
		}
		return &Jmp{Target: wi.Labels[0]}, nil
	case "br":
		if len(wi.Args) < 1 {
			return nil, fmt.Errorf("br requires a condition argument")
		}
		if len(wi.Labels) < 2 {
			return nil, fmt.Errorf("br requires two labels")
		}
		return &Br{Cond: wi.Args[0], LabelT: wi.Labels[0], LabelF: wi.Labels[1]}, nil
	case "not":
		if len(wi.Args) < 1 {
			return nil, fmt.Errorf("not requires one argument")
		}
		return &Unary{Op: "not", DestName: wi.Dest, Ty: Type(wi.Type), Arg: wi.Args[0]}, nil
	default:
		if BinaryOps[wi.Op] {
			if len(wi.Args) < 2 {
				return nil, fmt.Errorf("%s requires two arguments", wi.Op)
			}
			return &Binary{Op: wi.Op, DestName: wi.Dest, Ty: Type(wi.Type), Left: wi.Args[0], Right: wi.Args[1]}, nil
		}
	}
	return nil, fmt.Errorf("unknown operator %q", wi.Op)
}

func decodeLiteral(v any, t Type) (any, error) {
	switch t {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("const literal %v is not a bool", v)
		}
		return b, nil
	default:
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case int64:
			return n, nil
		default:
			return nil, fmt.Errorf("const literal %v is not an int", v)
		}
	}
}

func encodeInstr(instr Instruction) wireInstr {
	switch i := instr.(type) {
	case *Const:
		return wireInstr{Op: "const", Dest: i.DestName, Type: string(i.Ty), Value: i.Literal}
	case *Id:
		return wireInstr{Op: "id", Dest: i.DestName, Type: string(i.Ty), Args: []string{i.Src}}
	case *Print:
		return wireInstr{Op: "print", Args: []string{i.Arg}}
	case *Jmp:
		return wireInstr{Op: "jmp", Labels: []string{i.Target}}
	case *Br:
		return wireInstr{Op: "br", Args: []string{i.Cond}, Labels: []string{i.LabelT, i.LabelF}}
	case *Unary:
		return wireInstr{Op: i.Op, Dest: i.DestName, Type: string(i.Ty), Args: []string{i.Arg}}
	case *Binary:
		return wireInstr{Op: i.Op, Dest: i.DestName, Type: string(i.Ty), Args: []string{i.Left, i.Right}}
	case *Label:
		return wireInstr{Label: i.Name}
	}
	cerr.Invariant("encodeInstr: unhandled instruction %T", instr)
	return wireInstr{}
}

// formBasicBlocks partitions a flat instruction stream into basic blocks:
// a label starts a new block (closing the current one if it already holds
// anything), and a terminator (jmp/br) closes the block it ends.
func formBasicBlocks(instrs []Instruction) []*BasicBlock {
	var blocks []*BasicBlock
	cur := &BasicBlock{}
	for _, instr := range instrs {
		if lbl, ok := instr.(*Label); ok {
			if !cur.isEmpty() {
				blocks = append(blocks, cur)
				cur = &BasicBlock{}
			}
			cur.Label = lbl
			continue
		}
		cur.Instructions = append(cur.Instructions, instr)
		if instr.IsTerminator() {
			blocks = append(blocks, cur)
			cur = &BasicBlock{}
		}
	}
	if !cur.isEmpty() {
		blocks = append(blocks, cur)
	}
	return blocks
}
