package lvn

// simulated lists the ops ConstantPropagation will fold when every
// operand resolves to a literal.
var simulated = map[string]bool{
	"add": true, "sub": true, "mul": true, "div": true,
	"and": true, "or": true, "xor": true, "not": true,
	"lt": true, "gt": true, "eq": true, "le": true, "ge": true,
}

// ConstantPropagation resolves operands against known const entries and,
// once every operand of a simulated op is a literal, folds the whole
// Value into a const. Three short-circuit heuristics fire before every
// operand is a literal: `or` with a true operand, `and` with a false
// operand, and `eq`/`le`/`ge` whose two operands are syntactically
// identical (same value, resolved or not).
type ConstantPropagation struct{}

func NewConstantPropagation() *ConstantPropagation { return &ConstantPropagation{} }

func (*ConstantPropagation) Phase() Phase { return PreBuild }
func (*ConstantPropagation) Reset()       {}

func (*ConstantPropagation) Update(v Value, t *Table) Value {
	if !simulated[v.Op] {
		return v
	}

	args := make([]any, len(v.Operands))
	for i, operand := range v.Operands {
		id, ok := operand.(Identifier)
		if !ok || !id.IsNumber() {
			args[i] = operand
			continue
		}
		entry, found := t.GetEntryByIdentifier(id)
		if !found || entry.Value.Op != "const" {
			args[i] = operand
			continue
		}
		args[i] = entry.Value.Operands[0].(Primitive).Literal
	}

	if result, ok := presume(v.Op, args); ok {
		return NewValue("const", []Use{Primitive{Literal: result}}, v.Type)
	}

	for _, arg := range args {
		if _, stillSymbolic := arg.(Use); stillSymbolic {
			return v
		}
	}

	result, ok := simulate(v.Op, args)
	if !ok {
		return v
	}
	return NewValue("const", []Use{Primitive{Literal: result}}, v.Type)
}

func presume(op string, args []any) (any, bool) {
	switch op {
	case "or":
		for _, a := range args {
			if b, ok := a.(bool); ok && b {
				return true, true
			}
		}
	case "and":
		for _, a := range args {
			if b, ok := a.(bool); ok && !b {
				return false, true
			}
		}
	case "eq", "le", "ge":
		if len(args) == 2 && args[0] == args[1] {
			return true, true
		}
	}
	return nil, false
}

func simulate(op string, args []any) (any, bool) {
	switch op {
	case "add":
		return args[0].(int64) + args[1].(int64), true
	case "sub":
		return args[0].(int64) - args[1].(int64), true
	case "mul":
		return args[0].(int64) * args[1].(int64), true
	case "div":
		divisor := args[1].(int64)
		if divisor == 0 {
			// Left unfolded rather than folded into a garbage constant or
			// a compiler panic; the division survives to run at runtime,
			// where it is the target program's problem, not ours.
			return nil, false
		}
		return floorDiv(args[0].(int64), divisor), true
	case "and":
		return args[0].(bool) && args[1].(bool), true
	case "or":
		return args[0].(bool) || args[1].(bool), true
	case "xor":
		return args[0].(bool) != args[1].(bool), true
	case "not":
		return !args[0].(bool), true
	case "lt":
		return args[0].(int64) < args[1].(int64), true
	case "gt":
		return args[0].(int64) > args[1].(int64), true
	case "eq":
		return args[0] == args[1], true
	case "le":
		return args[0].(int64) <= args[1].(int64), true
	case "ge":
		return args[0].(int64) >= args[1].(int64), true
	}
	return nil, false
}

// floorDiv folds div with floor semantics: the quotient rounds toward
// negative infinity, not toward zero, matching the reference
// implementation's behavior exactly for negative operands.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
