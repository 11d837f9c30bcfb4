package insns

import "strconv"

// Name identifies a variable or a label after expansion.
// Invocation 0 is the global namespace; each macro invocation owns a distinct positive id.
type Name struct {
	Base       string
	Invocation int
}

func Global(base string) Name {
	return Name{
		Base: base,
	}
}

func (n Name) IsGlobal() bool {
	return n.Invocation == 0
}

func (n Name) String() string {
	if n.Invocation == 0 {
		return n.Base
	}
	return n.Base + "#" + strconv.Itoa(n.Invocation)
}
