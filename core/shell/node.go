package shell

// Operator joins the two sides of a List node.
type Operator int

const (
	// And runs the right side only when the left side exits zero.
	And Operator = iota
	// Or runs the right side only when the left side exits nonzero.
	Or
	// Seq runs both sides unconditionally.
	Seq
)

func (o Operator) String() string {
	switch o {
	case And:
		return "&&"
	case Or:
		return "||"
	case Seq:
		return ";"
	default:
		return "op?"
	}
}

// Node is a single vertex in a parsed command tree. The set of
// implementations is closed: *Command, *Pipeline and *List. Trees are built
// once per Parse call and never shared between calls.
type Node interface {
	node()
}

// Command is a single program invocation: the name followed by its arguments,
// one Token per shell word.
type Command struct {
	Args []Token
}

// Pipeline is an ordered chain of commands where each stage's stdout feeds
// the next stage's stdin. Always has at least two stages; a lone command
// parses as *Command.
type Pipeline struct {
	Stages []*Command
}

// List joins two subtrees with a control-flow operator.
type List struct {
	Left  Node
	Op    Operator
	Right Node
}

func (*Command) node()  {}
func (*Pipeline) node() {}
func (*List) node()     {}
