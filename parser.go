package airyc

// Parser is a predictive recursive-descent parser for declarations
// and statements, combined with a precedence-climbing (Pratt) parser
// for expressions (§4.2). It consumes the Lexer's full token stream,
// including trivia, and always produces a tree covering the entire
// input — malformed input still yields a CST, with ErrorNode spans
// marking what couldn't be recognized (§4.2 "Parser philosophy").
type Parser struct {
	toks    []Token
	pos     int
	builder *TreeBuilder
	diags   *Bag
	file    FileID
	lines   *LineIndex
}

// declSync is the set of token kinds the parser resynchronizes to
// after a malformed top-level declaration: the next declaration
// keyword, or EOF.
var declSync = map[SyntaxKind]bool{
	SyntaxKind_KwLet:    true,
	SyntaxKind_KwFn:     true,
	SyntaxKind_KwStruct: true,
	SyntaxKind_KwAttach: true,
	SyntaxKind_KwImport: true,
}

// stmtSync additionally resynchronizes within a block body to a
// statement terminator or block boundary (§4.2).
var stmtSync = map[SyntaxKind]bool{
	SyntaxKind_Semi:    true,
	SyntaxKind_LBrace:  true,
	SyntaxKind_RBrace:  true,
	SyntaxKind_KwLet:   true,
	SyntaxKind_KwIf:    true,
	SyntaxKind_KwWhile: true,
}

// Parse lexes and parses src in full, returning the resulting CST and
// whatever diagnostics were collected along the way. Parsing never
// aborts early (§4.2): every byte of src ends up in the tree, either
// as a recognized production or inside an ErrorNode.
func Parse(file FileID, src []byte) (*Tree, *Bag) {
	p := &Parser{
		toks:    NewLexer(src).Tokenize(),
		builder: NewTreeBuilder(),
		diags:   NewBag(),
		file:    file,
		lines:   NewLineIndex(src),
	}
	m := p.builder.StartNode()
	for p.peekKind() == SyntaxKind_KwImport {
		p.parseImport()
	}
	for p.peekKind() != SyntaxKind_EOF {
		p.parseGlobalDeclSynced()
	}
	p.skipTrivia()
	if p.pos < len(p.toks) {
		p.builder.PushToken(p.toks[p.pos])
		p.pos++
	}
	p.builder.FinishNode(m, SyntaxKind_CompUnit)
	return p.builder.Finish(src), p.diags
}

// ---- token-stream plumbing ----

func (p *Parser) skipTrivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].Kind.IsTrivia() {
		p.builder.PushToken(p.toks[p.pos])
		p.pos++
	}
}

// peekKind looks past trivia without consuming anything, so callers
// can decide whether to continue a loop before committing to bump.
func (p *Parser) peekKind() SyntaxKind {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Kind.IsTrivia() {
		i++
	}
	if i >= len(p.toks) {
		return SyntaxKind_EOF
	}
	return p.toks[i].Kind
}

func (p *Parser) peekToken() Token {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Kind.IsTrivia() {
		i++
	}
	if i >= len(p.toks) {
		if len(p.toks) > 0 {
			return p.toks[len(p.toks)-1]
		}
		return Token{Kind: SyntaxKind_EOF}
	}
	return p.toks[i]
}

// bump consumes and returns the next significant token, pushing any
// intervening trivia (and then itself) into the currently open node.
func (p *Parser) bump() Token {
	p.skipTrivia()
	tok := p.toks[p.pos]
	p.builder.PushToken(tok)
	p.pos++
	return tok
}

func (p *Parser) at(k SyntaxKind) bool { return p.peekKind() == k }

func (p *Parser) expect(k SyntaxKind) (Token, bool) {
	if p.at(k) {
		return p.bump(), true
	}
	p.errorf("expected %s, found %s", k, p.peekKind())
	return Token{}, false
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.peekToken()
	span := p.lines.Span(tok.Range)
	p.diags.Errorf(KindParseError, NewSourceLocation(p.file, span), format, args...)
}

// recover consumes tokens into a fresh ErrorNode until it reaches EOF
// or a token in stop, guaranteeing forward progress after a syntax
// error (§4.2 "resynchronizes by skipping to the next statement
// terminator, block boundary, or top-level declaration keyword").
func (p *Parser) recover(stop map[SyntaxKind]bool) NodeID {
	m := p.builder.StartNode()
	consumed := false
	for {
		k := p.peekKind()
		if k == SyntaxKind_EOF || (consumed && stop[k]) {
			break
		}
		p.bump()
		consumed = true
	}
	return p.builder.FinishNode(m, SyntaxKind_ErrorNode)
}

// ---- top-level declarations ----

func (p *Parser) parseImport() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwImport)
	p.expect(SyntaxKind_StringLiteral)
	if p.at(SyntaxKind_ColonColon) {
		p.bump()
		p.expect(SyntaxKind_Ident)
	}
	if p.at(SyntaxKind_Semi) {
		p.bump()
	}
	return p.builder.FinishNode(m, SyntaxKind_ImportDecl)
}

func (p *Parser) parseGlobalDeclSynced() NodeID {
	switch p.peekKind() {
	case SyntaxKind_KwLet:
		return p.parseVarDef()
	case SyntaxKind_KwFn:
		return p.parseFuncDecl()
	case SyntaxKind_KwStruct:
		return p.parseStructDef()
	case SyntaxKind_KwAttach:
		return p.parseAttachDef()
	default:
		p.errorf("expected a declaration, found %s", p.peekKind())
		return p.recover(declSync)
	}
}

func (p *Parser) parseVarDef() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwLet)
	p.expect(SyntaxKind_Ident)
	p.expect(SyntaxKind_Colon)
	p.parseType()
	if p.at(SyntaxKind_Eq) {
		p.bump()
		p.parseInitVal()
	}
	p.expect(SyntaxKind_Semi)
	return p.builder.FinishNode(m, SyntaxKind_VarDef)
}

func (p *Parser) parseFuncDecl() NodeID {
	m := p.builder.StartNode()
	p.parseFuncSign()
	if p.at(SyntaxKind_LBrace) {
		p.parseBlock()
	} else {
		p.expect(SyntaxKind_Semi)
	}
	return p.builder.FinishNode(m, SyntaxKind_FuncDecl)
}

func (p *Parser) parseFuncSign() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwFn)
	p.expect(SyntaxKind_Ident)
	p.expect(SyntaxKind_LParen)

	paramsMarker := p.builder.StartNode()
	if !p.at(SyntaxKind_RParen) {
		for {
			if p.at(SyntaxKind_DotDotDot) {
				p.bump()
				break
			}
			p.parseParam()
			if p.at(SyntaxKind_Comma) {
				p.bump()
				continue
			}
			break
		}
	}
	p.builder.FinishNode(paramsMarker, SyntaxKind_ParamList)

	p.expect(SyntaxKind_RParen)
	if p.at(SyntaxKind_Arrow) {
		p.bump()
		p.parseType()
	}
	return p.builder.FinishNode(m, SyntaxKind_FuncSign)
}

func (p *Parser) parseParam() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_Ident)
	p.expect(SyntaxKind_Colon)
	p.parseType()
	return p.builder.FinishNode(m, SyntaxKind_Param)
}

func (p *Parser) parseStructDef() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwStruct)
	p.expect(SyntaxKind_Ident)
	p.expect(SyntaxKind_LBrace)
	if !p.at(SyntaxKind_RBrace) {
		for {
			p.parseFieldDef()
			if p.at(SyntaxKind_Comma) {
				p.bump()
				if p.at(SyntaxKind_RBrace) {
					break
				}
				continue
			}
			break
		}
	}
	p.expect(SyntaxKind_RBrace)
	return p.builder.FinishNode(m, SyntaxKind_StructDef)
}

func (p *Parser) parseFieldDef() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_Ident)
	p.expect(SyntaxKind_Colon)
	p.parseType()
	return p.builder.FinishNode(m, SyntaxKind_FieldDef)
}

func (p *Parser) parseAttachDef() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwAttach)
	p.expect(SyntaxKind_Ident)
	p.parseBlock()
	return p.builder.FinishNode(m, SyntaxKind_AttachDef)
}

// ---- types ----

var primTypeKeywords = map[SyntaxKind]bool{
	SyntaxKind_KwVoid: true, SyntaxKind_KwBool: true,
	SyntaxKind_KwI8: true, SyntaxKind_KwI32: true, SyntaxKind_KwI64: true,
	SyntaxKind_KwU8: true, SyntaxKind_KwU32: true, SyntaxKind_KwU64: true,
}

func (p *Parser) parseType() NodeID {
	m := p.builder.StartNode()
	switch {
	case p.at(SyntaxKind_Star):
		p.parsePtrType()
	case p.at(SyntaxKind_LBracket):
		p.parseArrayType()
	default:
		if p.at(SyntaxKind_KwConst) {
			p.bump()
		}
		if p.at(SyntaxKind_KwStruct) {
			p.bump()
			p.expect(SyntaxKind_Ident)
		} else if primTypeKeywords[p.peekKind()] {
			p.bump()
		} else {
			p.errorf("expected a type, found %s", p.peekKind())
		}
	}
	return p.builder.FinishNode(m, SyntaxKind_TypeRef)
}

func (p *Parser) parsePtrType() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_Star)
	if p.at(SyntaxKind_KwMut) {
		p.bump()
	} else {
		p.expect(SyntaxKind_KwConst)
	}
	p.parseType()
	return p.builder.FinishNode(m, SyntaxKind_PtrType)
}

func (p *Parser) parseArrayType() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_LBracket)
	p.parseType()
	p.expect(SyntaxKind_Semi)
	p.parseExpr()
	p.expect(SyntaxKind_RBracket)
	return p.builder.FinishNode(m, SyntaxKind_ArrayType)
}

// ---- initializers ----

func (p *Parser) parseInitVal() NodeID {
	if p.at(SyntaxKind_LBrace) {
		return p.parseInitValList()
	}
	return p.parseExpr()
}

func (p *Parser) parseInitValList() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_LBrace)
	if !p.at(SyntaxKind_RBrace) {
		for {
			p.parseInitVal()
			if p.at(SyntaxKind_Comma) {
				p.bump()
				if p.at(SyntaxKind_RBrace) {
					break
				}
				continue
			}
			break
		}
	}
	p.expect(SyntaxKind_RBrace)
	return p.builder.FinishNode(m, SyntaxKind_InitValList)
}

// ---- blocks & statements ----

func (p *Parser) parseBlock() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_LBrace)
	for !p.at(SyntaxKind_RBrace) && !p.at(SyntaxKind_EOF) {
		p.parseStmt()
	}
	p.expect(SyntaxKind_RBrace)
	return p.builder.FinishNode(m, SyntaxKind_Block)
}

func (p *Parser) parseStmt() NodeID {
	switch p.peekKind() {
	case SyntaxKind_KwLet:
		return p.parseLetStmt()
	case SyntaxKind_KwIf:
		return p.parseIfStmt()
	case SyntaxKind_KwWhile:
		return p.parseWhileStmt()
	case SyntaxKind_KwBreak:
		m := p.builder.StartNode()
		p.bump()
		p.expect(SyntaxKind_Semi)
		return p.builder.FinishNode(m, SyntaxKind_BreakStmt)
	case SyntaxKind_KwContinue:
		m := p.builder.StartNode()
		p.bump()
		p.expect(SyntaxKind_Semi)
		return p.builder.FinishNode(m, SyntaxKind_ContinueStmt)
	case SyntaxKind_KwReturn:
		return p.parseReturnStmt()
	case SyntaxKind_LBrace:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLetStmt() NodeID {
	m := p.builder.StartNode()
	p.parseVarDef()
	return p.builder.FinishNode(m, SyntaxKind_LetStmt)
}

// parseIfStmt desugars `else if` into `else { if … }`: the nested if
// is wrapped in a synthetic Block so IfStmtView.Else always yields a
// Block, never an IfStmt directly.
func (p *Parser) parseIfStmt() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwIf)
	p.parseExpr()
	p.parseBlock()
	if p.at(SyntaxKind_KwElse) {
		p.bump()
		if p.at(SyntaxKind_KwIf) {
			synth := p.builder.StartNode()
			p.parseIfStmt()
			p.builder.FinishNode(synth, SyntaxKind_Block)
		} else {
			p.parseBlock()
		}
	}
	return p.builder.FinishNode(m, SyntaxKind_IfStmt)
}

func (p *Parser) parseWhileStmt() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwWhile)
	p.parseExpr()
	p.parseBlock()
	return p.builder.FinishNode(m, SyntaxKind_WhileStmt)
}

func (p *Parser) parseReturnStmt() NodeID {
	m := p.builder.StartNode()
	p.expect(SyntaxKind_KwReturn)
	if !p.at(SyntaxKind_Semi) {
		p.parseExpr()
	}
	p.expect(SyntaxKind_Semi)
	return p.builder.FinishNode(m, SyntaxKind_ReturnStmt)
}

func (p *Parser) parseExprOrAssignStmt() NodeID {
	m := p.builder.StartNode()
	p.parseExpr()
	if p.at(SyntaxKind_Eq) {
		p.bump()
		p.parseExpr()
		p.expect(SyntaxKind_Semi)
		return p.builder.FinishNode(m, SyntaxKind_AssignStmt)
	}
	p.expect(SyntaxKind_Semi)
	return p.builder.FinishNode(m, SyntaxKind_ExprStmt)
}

// ---- expressions ----

// binPrec ranks a binary operator token per the table in §4.2 (high
// number binds tighter); 0 means k is not a binary operator.
func binPrec(k SyntaxKind) int {
	switch k {
	case SyntaxKind_OrOr:
		return 1
	case SyntaxKind_AndAnd:
		return 2
	case SyntaxKind_EqEq, SyntaxKind_NotEq:
		return 3
	case SyntaxKind_Lt, SyntaxKind_Gt, SyntaxKind_Le, SyntaxKind_Ge:
		return 4
	case SyntaxKind_Plus, SyntaxKind_Minus:
		return 5
	case SyntaxKind_Star, SyntaxKind_Slash, SyntaxKind_Percent:
		return 6
	default:
		return 0
	}
}

func (p *Parser) parseExpr() NodeID { return p.parseBinary(1) }

// parseBinary implements precedence climbing: left operands are
// parsed once, then retroactively wrapped (via TreeBuilder.Precede)
// each time an operator at or above minPrec is found, which is what
// gives left-associative chains their left-leaning nesting without
// having to guess ahead of time whether a wrapper node is needed.
func (p *Parser) parseBinary(minPrec int) NodeID {
	left := p.parseUnary()
	for {
		op := p.peekKind()
		prec := binPrec(op)
		if prec == 0 || prec < minPrec {
			return left
		}
		m := p.builder.Precede()
		p.bump()
		p.parseBinary(prec + 1)
		left = p.builder.FinishNode(m, SyntaxKind_BinaryExpr)
	}
}

var unaryOps = map[SyntaxKind]bool{
	SyntaxKind_Plus: true, SyntaxKind_Minus: true, SyntaxKind_Bang: true,
	SyntaxKind_Amp: true, SyntaxKind_Star: true,
}

func (p *Parser) parseUnary() NodeID {
	if unaryOps[p.peekKind()] {
		m := p.builder.StartNode()
		p.bump()
		p.parseUnary()
		return p.builder.FinishNode(m, SyntaxKind_UnaryExpr)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() NodeID {
	left := p.parsePrimary()
	for {
		switch p.peekKind() {
		case SyntaxKind_LParen:
			m := p.builder.Precede()
			p.bump()
			p.parseArgList()
			p.expect(SyntaxKind_RParen)
			left = p.builder.FinishNode(m, SyntaxKind_CallExpr)
		case SyntaxKind_LBracket:
			m := p.builder.Precede()
			p.bump()
			p.parseExpr()
			p.expect(SyntaxKind_RBracket)
			left = p.builder.FinishNode(m, SyntaxKind_IndexExpr)
		case SyntaxKind_Dot:
			m := p.builder.Precede()
			p.bump()
			p.expect(SyntaxKind_Ident)
			left = p.builder.FinishNode(m, SyntaxKind_FieldExpr)
		case SyntaxKind_Arrow:
			m := p.builder.Precede()
			p.bump()
			p.expect(SyntaxKind_Ident)
			left = p.builder.FinishNode(m, SyntaxKind_ArrowExpr)
		default:
			return left
		}
	}
}

func (p *Parser) parseArgList() NodeID {
	m := p.builder.StartNode()
	if !p.at(SyntaxKind_RParen) {
		for {
			p.parseExpr()
			if p.at(SyntaxKind_Comma) {
				p.bump()
				continue
			}
			break
		}
	}
	return p.builder.FinishNode(m, SyntaxKind_ArgList)
}

func (p *Parser) parsePrimary() NodeID {
	switch p.peekKind() {
	case SyntaxKind_IntLiteral:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_IntLiteralExpr)
	case SyntaxKind_CharLiteral:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_CharLiteralExpr)
	case SyntaxKind_StringLiteral:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_StringLiteralExpr)
	case SyntaxKind_KwTrue, SyntaxKind_KwFalse:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_BoolLiteralExpr)
	case SyntaxKind_KwNull:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_NullLiteralExpr)
	case SyntaxKind_Ident:
		m := p.builder.StartNode()
		p.bump()
		return p.builder.FinishNode(m, SyntaxKind_IdentExpr)
	case SyntaxKind_LParen:
		m := p.builder.StartNode()
		p.bump()
		p.parseExpr()
		p.expect(SyntaxKind_RParen)
		return p.builder.FinishNode(m, SyntaxKind_ParenExpr)
	default:
		p.errorf("expected an expression, found %s", p.peekKind())
		m := p.builder.StartNode()
		if p.peekKind() != SyntaxKind_EOF && !stmtSync[p.peekKind()] {
			p.bump()
		}
		return p.builder.FinishNode(m, SyntaxKind_ErrorNode)
	}
}
