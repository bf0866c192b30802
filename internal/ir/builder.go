package ir

import "brilopt/internal/cerr"

// Build constructs an Instruction from an explicit operator, destination,
// and operand list. uses holds, positionally:
//   - const: the literal value (int64 or bool), never a name
//   - jmp: the target label
//   - br: cond, labelT, labelF
//   - everything else: operand variable names
//
// Build panics (IRInvariantViolation) on "label" or on an operator it
// doesn't recognize: labels are block-structural and are never built this
// way, and an unknown operator means a caller handed it something that
// never should have made it past parsing.
func Build(operator string, dest string, destType Type, uses []any) Instruction {
	switch operator {
	case "label":
		cerr.Invariant("builder cannot construct a label instruction")
	case "jmp":
		return &Jmp{Target: uses[0].(string)}
	case "br":
		return &Br{Cond: uses[0].(string), LabelT: uses[1].(string), LabelF: uses[2].(string)}
	case "const":
		return &Const{DestName: dest, Ty: destType, Literal: uses[0]}
	case "id":
		return &Id{DestName: dest, Ty: destType, Src: uses[0].(string)}
	case "print":
		return &Print{Arg: uses[0].(string)}
	case "not":
		return &Unary{Op: "not", DestName: dest, Ty: destType, Arg: uses[0].(string)}
	default:
		if BinaryOps[operator] {
			return &Binary{Op: operator, DestName: dest, Ty: destType, Left: uses[0].(string), Right: uses[1].(string)}
		}
	}
	cerr.Invariant("builder: unknown operator %q", operator)
	return nil
}
