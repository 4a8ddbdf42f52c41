package eval

// SignalKind discriminates the in-band control-flow token bubbled through
// statement execution (spec.md §3, Design Notes "Control-flow signals
// instead of exceptions"). No teacher precedent exists for this type — the
// teacher's bytecode VM uses jump instructions instead, a consequence of
// spec.md mandating a tree-walking evaluator (see DESIGN.md).
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalBreak
	SignalContinue
	SignalReturn
)

// Signal is the result of executing a statement: either nothing unusual
// (SignalNone), a break/continue, or a return carrying its value.
type Signal struct {
	Kind  SignalKind
	Value Value
}

var noneSignal = Signal{Kind: SignalNone}
var breakSignal = Signal{Kind: SignalBreak}
var continueSignal = Signal{Kind: SignalContinue}

func returnSignal(v Value) Signal { return Signal{Kind: SignalReturn, Value: v} }
