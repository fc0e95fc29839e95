package shell

import (
	"bytes"
	"errors"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Token is a single shell word. It may contain $NAME and ${NAME} references
// that are substituted at resolution time. A token always resolves to
// exactly one argument; it is never re-split into several, so a value
// containing whitespace or shell metacharacters still arrives at the process
// as one argv entry.
type Token struct {
	word *syntax.Word
}

func newToken(word *syntax.Word) (Token, error) {
	if err := checkWord(word); err != nil {
		return Token{}, err
	}
	return Token{word: word}, nil
}

// Lit returns the token as it appeared in the source, before resolution.
func (t Token) Lit() string {
	if t.word == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = syntax.NewPrinter().Print(&buf, t.word)
	return buf.String()
}

// Resolve expands variable references against lookup and returns the single
// argument the token denotes. References to unknown names expand to the
// empty string.
func (t Token) Resolve(lookup func(name string) string) (string, error) {
	if t.word == nil {
		return "", nil
	}
	cfg := &expand.Config{
		Env: expand.FuncEnviron(lookup),
	}
	out, err := expand.Literal(cfg, t.word)
	if err != nil {
		var cmdErr expand.UnexpectedCommandError
		if errors.As(err, &cmdErr) {
			return "", &UnsupportedError{Construct: "command substitution", Pos: t.word.Pos()}
		}
		return "", err
	}
	return out, nil
}

func checkWord(word *syntax.Word) error {
	for _, part := range word.Parts {
		if err := checkWordPart(part); err != nil {
			return err
		}
	}
	return nil
}

func checkWordPart(part syntax.WordPart) error {
	switch part := part.(type) {
	case *syntax.Lit, *syntax.SglQuoted:
		return nil
	case *syntax.DblQuoted:
		for _, sub := range part.Parts {
			if err := checkWordPart(sub); err != nil {
				return err
			}
		}
		return nil
	case *syntax.ParamExp:
		// Only $NAME and ${NAME}; operators like ${X:-y} or ${#X} change
		// the value in ways a caller auditing the command can't predict.
		if part.Excl || part.Length || part.Width ||
			part.Index != nil || part.Slice != nil || part.Repl != nil || part.Exp != nil {
			return &UnsupportedError{Construct: "parameter expansion operator", Pos: part.Pos()}
		}
		return nil
	case *syntax.CmdSubst:
		return &UnsupportedError{Construct: "command substitution", Pos: part.Pos()}
	case *syntax.ArithmExp:
		return &UnsupportedError{Construct: "arithmetic expansion", Pos: part.Pos()}
	case *syntax.ProcSubst:
		return &UnsupportedError{Construct: "process substitution", Pos: part.Pos()}
	case *syntax.ExtGlob:
		return &UnsupportedError{Construct: "extended glob", Pos: part.Pos()}
	default:
		return &UnsupportedError{Construct: "word expansion", Pos: part.Pos()}
	}
}
