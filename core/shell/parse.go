// Package shell parses command strings into a small, safe command tree.
//
// The grammar is the subset of POSIX shell a caller can reason about without
// a shell: plain commands, pipelines, and the &&, || and ; combinators.
// Everything else is rejected with an explicit error instead of being handed
// to a real shell, which is the point of the package.
package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ParseError reports input the grammar could not make sense of, such as an
// unterminated quote.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedError reports syntactically valid input that uses a construct
// outside the safe subset. It is distinct from ParseError so that callers
// who opt into a fallback for unsupported constructs don't also accept
// malformed input.
type UnsupportedError struct {
	Construct string
	Pos       syntax.Pos
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported construct at %s: %s", e.Pos, e.Construct)
}

// Parse converts a raw command line into its command tree and returns the
// top-level nodes in source order. Statements joined by ";" fold into Seq
// lists; newline separated statements become separate top-level nodes.
// Empty or blank input yields no nodes and no error.
func Parse(input string) ([]Node, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(input), "")
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var nodes []Node
	var chain Node // statements joined to the next one by ";"
	for _, stmt := range file.Stmts {
		n, err := convertStmt(stmt)
		if err != nil {
			return nil, err
		}
		if chain != nil {
			n = &List{Left: chain, Op: Seq, Right: n}
		}
		if stmt.Semicolon.IsValid() {
			chain = n
		} else {
			nodes = append(nodes, n)
			chain = nil
		}
	}
	if chain != nil {
		// Trailing ";" with nothing after it.
		nodes = append(nodes, chain)
	}
	return nodes, nil
}

func checkStmt(stmt *syntax.Stmt) error {
	switch {
	case len(stmt.Redirs) > 0:
		return &UnsupportedError{Construct: "redirection", Pos: stmt.Redirs[0].OpPos}
	case stmt.Background:
		return &UnsupportedError{Construct: "background job", Pos: stmt.Position}
	case stmt.Coprocess:
		return &UnsupportedError{Construct: "coprocess", Pos: stmt.Position}
	case stmt.Negated:
		return &UnsupportedError{Construct: "negation", Pos: stmt.Position}
	default:
		return nil
	}
}

func convertStmt(stmt *syntax.Stmt) (Node, error) {
	if err := checkStmt(stmt); err != nil {
		return nil, err
	}
	return convertCmd(stmt.Cmd)
}

func convertCmd(cmd syntax.Command) (Node, error) {
	switch cmd := cmd.(type) {
	case *syntax.CallExpr:
		return convertCall(cmd)

	case *syntax.BinaryCmd:
		switch cmd.Op {
		case syntax.AndStmt, syntax.OrStmt:
			left, err := convertStmt(cmd.X)
			if err != nil {
				return nil, err
			}
			right, err := convertStmt(cmd.Y)
			if err != nil {
				return nil, err
			}
			op := And
			if cmd.Op == syntax.OrStmt {
				op = Or
			}
			return &List{Left: left, Op: op, Right: right}, nil

		case syntax.Pipe:
			var stages []*Command
			if err := flattenPipe(cmd, &stages); err != nil {
				return nil, err
			}
			return &Pipeline{Stages: stages}, nil

		default:
			return nil, &UnsupportedError{Construct: fmt.Sprintf("%q operator", cmd.Op.String()), Pos: cmd.OpPos}
		}

	default:
		return nil, &UnsupportedError{Construct: commandName(cmd), Pos: cmd.Pos()}
	}
}

func convertCall(call *syntax.CallExpr) (*Command, error) {
	if len(call.Assigns) > 0 {
		return nil, &UnsupportedError{Construct: "variable assignment", Pos: call.Assigns[0].Pos()}
	}
	out := &Command{}
	for _, word := range call.Args {
		tok, err := newToken(word)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, tok)
	}
	return out, nil
}

// flattenPipe collects the stages of a (possibly nested) pipe into a flat,
// source-ordered list. Every stage must be a plain command.
func flattenPipe(bin *syntax.BinaryCmd, out *[]*Command) error {
	for _, stmt := range []*syntax.Stmt{bin.X, bin.Y} {
		if err := checkStmt(stmt); err != nil {
			return err
		}
		if sub, ok := stmt.Cmd.(*syntax.BinaryCmd); ok && sub.Op == syntax.Pipe {
			if err := flattenPipe(sub, out); err != nil {
				return err
			}
			continue
		}
		n, err := convertCmd(stmt.Cmd)
		if err != nil {
			return err
		}
		cmdNode, ok := n.(*Command)
		if !ok {
			return &UnsupportedError{Construct: "compound pipeline stage", Pos: stmt.Position}
		}
		*out = append(*out, cmdNode)
	}
	return nil
}

func commandName(cmd syntax.Command) string {
	switch cmd.(type) {
	case *syntax.Subshell:
		return "subshell"
	case *syntax.Block:
		return "command group"
	case *syntax.IfClause:
		return "if clause"
	case *syntax.WhileClause:
		return "while clause"
	case *syntax.ForClause:
		return "for clause"
	case *syntax.CaseClause:
		return "case clause"
	case *syntax.FuncDecl:
		return "function declaration"
	case *syntax.DeclClause:
		return "declaration"
	case *syntax.ArithmCmd:
		return "arithmetic command"
	case *syntax.TestClause:
		return "test clause"
	case *syntax.TimeClause:
		return "time clause"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
