package lvn

// Phase classifies when an Extension's Update runs relative to table
// construction.
type Phase int

const (
	// PreBuild extensions run right after a Value is encoded, before it
	// is looked up in or admitted to the table.
	PreBuild Phase = iota
	// Reconstruction extensions run just before an entry's Value is
	// turned back into an instruction.
	Reconstruction
	// PostBuild is reserved for extensions that run after an entry has
	// already been admitted; no required extension needs it today.
	PostBuild
)

// Extension is a pluggable LVN transform on Values, applied in
// registration order within its phase.
type Extension interface {
	Phase() Phase
	Update(v Value, t *Table) Value
	// Reset clears any per-block cache an extension keeps. Prefer
	// constructing a fresh extension pipeline per block over relying on
	// this: a stale cache entry from an earlier block silently produces
	// the wrong canonical source.
	Reset()
}

// commutable lists the two-operand ops the Commutativity extension
// reorders. sub and div are included exactly as the reference
// implementation treats them: this is not mathematically sound (a - b is
// not b - a), but the swap is deliberate and every downstream pass must
// tolerate it rather than "fix" it.
var commutable = map[string]bool{
	"add": true, "mul": true, "sub": true, "div": true,
	"and": true, "or": true, "xor": true,
}

// Commutativity reorders a commutable op's two operands so the smaller
// one (by Identifier.Less) comes first, letting `add a b` and `add b a`
// hash-cons to the same entry.
type Commutativity struct{}

func NewCommutativity() *Commutativity { return &Commutativity{} }

func (*Commutativity) Phase() Phase { return PreBuild }
func (*Commutativity) Reset()       {}

func (*Commutativity) Update(v Value, t *Table) Value {
	if !commutable[v.Op] || len(v.Operands) != 2 {
		return v
	}
	left, leftOK := v.Operands[0].(Identifier)
	right, rightOK := v.Operands[1].(Identifier)
	if !leftOK || !rightOK || left.Less(right) {
		return v
	}
	return NewValue(v.Op, []Use{v.Operands[1], v.Operands[0]}, v.Type)
}

// IdentityPropagation walks chains of id entries at reconstruction time
// and replaces each numeric operand with its ultimate non-id source.
// Resolved sources are cached for the lifetime of one instance; construct
// a fresh IdentityPropagation per block rather than calling Reset.
type IdentityPropagation struct {
	sources map[Identifier]Identifier
}

func NewIdentityPropagation() *IdentityPropagation {
	return &IdentityPropagation{sources: map[Identifier]Identifier{}}
}

func (*IdentityPropagation) Phase() Phase { return Reconstruction }

func (e *IdentityPropagation) Reset() { e.sources = map[Identifier]Identifier{} }

func (e *IdentityPropagation) Update(v Value, t *Table) Value {
	if v.Op == "const" {
		return v
	}

	changed := false
	operands := make([]Use, len(v.Operands))
	for i, operand := range v.Operands {
		id, ok := operand.(Identifier)
		if !ok {
			operands[i] = operand
			continue
		}
		source := e.resolve(id, t)
		operands[i] = source
		if source != id {
			changed = true
		}
	}
	if !changed {
		return v
	}
	return NewValue(v.Op, operands, v.Type)
}

func (e *IdentityPropagation) resolve(id Identifier, t *Table) Identifier {
	if source, cached := e.sources[id]; cached {
		return source
	}
	if !id.IsNumber() {
		e.sources[id] = id
		return id
	}
	entry, ok := t.GetEntryByIdentifier(id)
	if !ok || entry.Value.Op != "id" {
		e.sources[id] = id
		return id
	}
	srcOperand := entry.Value.Operands[0].(Identifier)
	source := e.resolve(srcOperand, t)
	e.sources[id] = source
	return source
}

// IdentityToConstant emits a const directly when an id chain terminates
// at one, instead of routing the copy through reconstruction's default
// "id" emission.
type IdentityToConstant struct{}

func NewIdentityToConstant() *IdentityToConstant { return &IdentityToConstant{} }

func (*IdentityToConstant) Phase() Phase { return Reconstruction }
func (*IdentityToConstant) Reset()       {}

func (*IdentityToConstant) Update(v Value, t *Table) Value {
	current := v
	for {
		if current.Op != "id" {
			return v
		}
		operand, ok := current.Operands[0].(Identifier)
		if !ok {
			return v
		}
		entry, found := t.GetEntryByIdentifier(operand)
		if !found {
			return v
		}
		current = entry.Value
		if current.Op == "const" {
			return current
		}
	}
}
