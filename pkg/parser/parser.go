// Package parser turns stub generator text into a command tree.
//
// The grammar is small and line-oriented: read, write, loop and loopline
// commands, plus OUTPUT, INPUT and STATEMENT free-text blocks. Malformed
// generator text is a bug in the puzzle's own generator, not user input, so
// every violation is a fatal error for the current request.
//
// # Token stream
//
// Tokenize splits the text into whitespace-delimited tokens with explicit
// end-of-line sentinels; the parser walks them with an indexed cursor rather
// than a consuming iterator, which keeps single-line lookahead (join
// detection, block terminators) trivial.
//
// # Read pairings
//
// While parsing, the parser threads a ReadPairings table from read/loopline
// declarations to later write join(...) commands, where identifier terms are
// type-resolved. This is the only cross-command dependency in the grammar.
package parser

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pthm/stubgen/pkg/stub"
)

// ErrSyntax marks malformed generator text: unknown keywords, missing type
// annotations, sized/unsized mismatches, loops without counts or bodies.
var ErrSyntax = errors.New("stub generator syntax error")

// ErrSemantic marks well-formed text with an impossible meaning, such as a
// join term referencing an identifier that was never read.
var ErrSemantic = errors.New("stub generator semantic error")

var (
	sizedTypeRe   = regexp.MustCompile(`^(word|string)\((\w+)\)$`)
	joinRe        = regexp.MustCompile(`join\((.+)\)`)
	joinTermSplit = regexp.MustCompile(`\s*,\s*`)
	joinLiteralRe = regexp.MustCompile(`^"(.+)"$`)
)

// keywords that begin a new command or block. A line led by one of these
// terminates any free-text block or multi-line write in progress.
var keywords = map[string]bool{
	"read":      true,
	"write":     true,
	"loop":      true,
	"loopline":  true,
	"OUTPUT":    true,
	"INPUT":     true,
	"STATEMENT": true,
	"gameloop":  true,
}

// Parse parses stub generator text into a Stub.
func Parse(text string) (*stub.Stub, error) {
	return newParser(text).parse()
}

// parser is a cursor over the token stream.
type parser struct {
	tokens   []string
	pos      int
	pairings ReadPairings
}

func newParser(text string) *parser {
	return &parser{
		tokens:   Tokenize(text),
		pairings: make(ReadPairings),
	}
}

func (p *parser) parse() (*stub.Stub, error) {
	s := &stub.Stub{}

	for {
		tok, ok := p.next()
		if !ok {
			break
		}

		var (
			cmd stub.Cmd
			err error
		)
		switch tok {
		case "read":
			cmd, err = p.parseRead()
		case "write":
			cmd, err = p.parseWrite()
		case "loop":
			cmd, err = p.parseLoop()
		case "loopline":
			cmd, err = p.parseLoopLine()
		case "OUTPUT":
			s.Commands = attachOutputComment(s.Commands, p.parseTextBlock())
		case "INPUT":
			p.parseInputComment(s.Commands)
		case "STATEMENT":
			s.Statement = p.parseTextBlock()
		case "", EOL:
			continue
		case "gameloop":
			return nil, errors.Wrap(ErrSyntax, "gameloop stubs are not supported")
		default:
			return nil, errors.Wrapf(ErrSyntax, "unknown keyword %q", tok)
		}
		if err != nil {
			return nil, err
		}
		if cmd != nil {
			s.Commands = append(s.Commands, cmd)
		}
	}

	return s, nil
}

// parseRead parses the variable list after a read keyword and registers the
// declared variables in the pairings table.
func (p *parser) parseRead() (stub.Cmd, error) {
	vars, err := p.parseVariableList()
	if err != nil {
		return nil, err
	}
	p.pairings.Register(vars)
	return stub.Read{Variables: vars}, nil
}

// parseWrite parses literal write text, switching to a WriteJoin when the
// first line carries a usable join(...) call.
//
// The DSL is deliberately permissive here: an empty join(), an unterminated
// join(, or a join with consecutive-comma empty arguments all fall back to
// ordinary literal text rather than failing.
func (p *parser) parseWrite() (stub.Cmd, error) {
	firstLine := strings.Join(p.restOfLine(), " ")

	if cmd, ok, err := p.parseWriteJoin(firstLine); err != nil {
		return nil, err
	} else if ok {
		return cmd, nil
	}

	lines := []string{firstLine}
	for {
		line, ok := p.peekLine()
		if !ok || isBlankLine(line) || leadKeyword(line) != "" {
			break
		}
		p.consumeLine()
		lines = append(lines, strings.Join(line, " "))
	}

	return stub.Write{Lines: lines}, nil
}

// parseWriteJoin tries to interpret line as a join(...) call. The second
// return value reports whether the line committed to a WriteJoin; a
// degenerate join is not an error, it just stays literal.
func (p *parser) parseWriteJoin(line string) (stub.Cmd, bool, error) {
	m := joinRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false, nil
	}

	raw := joinTermSplit.Split(m[1], -1)
	for _, term := range raw {
		if term == "" {
			// join("a",,, "b") and friends: parser quirk, kept as text.
			return nil, false, nil
		}
	}

	terms := make([]stub.JoinTerm, 0, len(raw))
	for _, term := range raw {
		if lit := joinLiteralRe.FindStringSubmatch(term); lit != nil {
			terms = append(terms, stub.JoinTerm{Text: lit[1]})
			continue
		}
		varType, ok := p.pairings.Resolve(term)
		if !ok {
			return nil, false, errors.Wrapf(ErrSemantic, "join references %q which was never read", term)
		}
		terms = append(terms, stub.JoinTerm{Text: term, Type: &varType})
	}

	return stub.WriteJoin{Terms: terms}, true, nil
}

func (p *parser) parseLoop() (stub.Cmd, error) {
	count, ok := p.nextNonBlank()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "loop was not provided with a count")
	}
	body, err := p.parseLoopable()
	if err != nil {
		return nil, err
	}
	return stub.Loop{CountVar: count, Body: body}, nil
}

// parseLoopable parses the single command a loop repeats.
func (p *parser) parseLoopable() (stub.Cmd, error) {
	tok, ok := p.nextNonBlank()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "loop was not provided with a command")
	}
	switch tok {
	case "read":
		return p.parseRead()
	case "write":
		return p.parseWrite()
	case "loop":
		return p.parseLoop()
	case "loopline":
		return p.parseLoopLine()
	}
	return nil, errors.Wrapf(ErrSyntax, "cannot loop over %q", tok)
}

func (p *parser) parseLoopLine() (stub.Cmd, error) {
	count, ok := p.nextNonBlank()
	if !ok {
		return nil, errors.Wrap(ErrSyntax, "loopline was not provided with a count")
	}
	vars, err := p.parseVariableList()
	if err != nil {
		return nil, err
	}
	p.pairings.Register(vars)
	return stub.LoopLine{CountVar: count, Variables: vars}, nil
}

// parseVariableList consumes ident:type tokens up to the end of the line.
// Stray extra spaces between variables are tolerated.
func (p *parser) parseVariableList() ([]stub.VariableCommand, error) {
	var vars []stub.VariableCommand
	for {
		tok, ok := p.next()
		if !ok || tok == EOL {
			break
		}
		if tok == "" {
			continue
		}
		if !strings.Contains(tok, ":") {
			return nil, errors.Wrapf(ErrSyntax, "found %q while searching for stub variables", tok)
		}
		v, err := parseVariable(tok)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	if len(vars) == 0 {
		return nil, errors.Wrap(ErrSyntax, "empty variable list")
	}
	return vars, nil
}

func parseVariable(token string) (stub.VariableCommand, error) {
	ident, typeExpr, _ := strings.Cut(token, ":")
	if typeExpr == "" {
		return stub.VariableCommand{}, errors.Wrapf(ErrSyntax, "variable %q is missing its type", token)
	}

	if m := sizedTypeRe.FindStringSubmatch(typeExpr); m != nil {
		varType, err := stub.SizedType(m[1])
		if err != nil {
			return stub.VariableCommand{}, errors.Wrapf(ErrSyntax, "variable %q", token)
		}
		return stub.VariableCommand{Ident: ident, Type: varType, MaxLength: m[2]}, nil
	}

	switch typeExpr {
	case "int", "float", "long", "bool":
		varType, err := stub.UnsizedType(typeExpr)
		if err != nil {
			return stub.VariableCommand{}, errors.Wrapf(ErrSyntax, "variable %q", token)
		}
		return stub.VariableCommand{Ident: ident, Type: varType}, nil
	case "word", "string":
		return stub.VariableCommand{}, errors.Wrapf(ErrSyntax, "sized variable %q is missing its (length)", token)
	}
	return stub.VariableCommand{}, errors.Wrapf(ErrSyntax, "cannot parse variable type for %q", token)
}

// parseTextBlock consumes a free-text block: the rest of the keyword's own
// line is discarded, then lines accumulate (trimmed) until a blank line, the
// end of input, or a line led by a keyword.
func (p *parser) parseTextBlock() []string {
	p.consumeLine()
	var block []string
	for {
		line, ok := p.peekLine()
		if !ok || isBlankLine(line) || leadKeyword(line) != "" {
			break
		}
		p.consumeLine()
		block = append(block, strings.TrimSpace(strings.Join(line, " ")))
	}
	return block
}

// parseInputComment consumes an INPUT block of "identifier: description"
// lines and attaches each description to every matching variable in the
// commands parsed so far. Matching is by exact surface identifier; lines
// without an identifier prefix are ignored; a repeated identifier overwrites
// its earlier description.
func (p *parser) parseInputComment(commands []stub.Cmd) {
	p.consumeLine()
	for {
		line, ok := p.peekLine()
		if !ok || isBlankLine(line) || leadKeyword(line) != "" {
			break
		}
		p.consumeLine()

		lead := leadTokenIndex(line)
		if lead < 0 {
			continue
		}
		ident, found := strings.CutSuffix(line[lead], ":")
		if !found || ident == "" {
			continue
		}
		desc := strings.TrimSpace(strings.Join(line[lead+1:], " "))
		for i := range commands {
			commands[i] = attachInputComment(commands[i], ident, desc)
		}
	}
}

// attachInputComment sets the input comment on every variable named ident,
// recursing through loop bodies.
func attachInputComment(cmd stub.Cmd, ident, desc string) stub.Cmd {
	setMatching := func(vars []stub.VariableCommand) {
		for i := range vars {
			if vars[i].Ident == ident {
				vars[i].InputComment = desc
			}
		}
	}

	switch c := cmd.(type) {
	case stub.Read:
		setMatching(c.Variables)
		return c
	case stub.LoopLine:
		setMatching(c.Variables)
		return c
	case stub.Loop:
		c.Body = attachInputComment(c.Body, ident, desc)
		return c
	}
	return cmd
}

// attachOutputComment attaches comment to every write-like command that does
// not already carry one, recursing through loop bodies. Existing comments are
// never overwritten.
func attachOutputComment(commands []stub.Cmd, comment []string) []stub.Cmd {
	if len(comment) == 0 {
		return commands
	}
	for i := range commands {
		commands[i] = attachOutputToCmd(commands[i], comment)
	}
	return commands
}

func attachOutputToCmd(cmd stub.Cmd, comment []string) stub.Cmd {
	switch c := cmd.(type) {
	case stub.Write:
		if len(c.OutputComment) == 0 {
			c.OutputComment = comment
		}
		return c
	case stub.WriteJoin:
		if len(c.OutputComment) == 0 {
			c.OutputComment = comment
		}
		return c
	case stub.Loop:
		c.Body = attachOutputToCmd(c.Body, comment)
		return c
	}
	return cmd
}

// Cursor helpers.

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// nextNonBlank returns the next token that is neither empty nor an EOL.
func (p *parser) nextNonBlank() (string, bool) {
	for {
		tok, ok := p.next()
		if !ok {
			return "", false
		}
		if tok != "" && tok != EOL {
			return tok, true
		}
	}
}

// restOfLine consumes and returns the tokens up to and including the next
// EOL sentinel (the sentinel itself is not returned).
func (p *parser) restOfLine() []string {
	var line []string
	for {
		tok, ok := p.next()
		if !ok || tok == EOL {
			return line
		}
		line = append(line, tok)
	}
}

// peekLine returns the tokens of the upcoming line without advancing.
func (p *parser) peekLine() ([]string, bool) {
	if p.pos >= len(p.tokens) {
		return nil, false
	}
	var line []string
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i] == EOL {
			break
		}
		line = append(line, p.tokens[i])
	}
	return line, true
}

func (p *parser) consumeLine() {
	p.restOfLine()
}

// isBlankLine reports whether the line was truly empty in the source. A line
// of only spaces is not blank: its empty tokens are preserved as text.
func isBlankLine(line []string) bool {
	return len(line) == 0 || (len(line) == 1 && line[0] == "")
}

// leadKeyword returns the line's first non-empty token if it is a keyword.
func leadKeyword(line []string) string {
	if i := leadTokenIndex(line); i >= 0 && keywords[line[i]] {
		return line[i]
	}
	return ""
}

func leadTokenIndex(line []string) int {
	for i, tok := range line {
		if tok != "" {
			return i
		}
	}
	return -1
}
