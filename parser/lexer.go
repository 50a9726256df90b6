/*
 * RPAL
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

/*
RuneEOF is a special rune which represents the end of the input.
*/
const RuneEOF = -1

/*
Function which represents the current state of the lexer and returns the
next state.
*/
type lexFunc func(*lexer) lexFunc

/*
lexer is the RPAL lexer. It runs as a state machine in its own goroutine
and emits tokens onto a channel, one rune-scan pass over the source.
*/
type lexer struct {
	name   string        // Input source label (e.g. filename)
	input  string        // Input string
	pos    int           // Current byte pointer
	line   int           // Current line (0-based internally)
	lastnl int           // Byte position of the last newline
	width  int           // Width of the last decoded rune
	start  int           // Start of the token currently being scanned
	tokens chan LexToken // Output channel
}

/*
Lex lexes a given input and returns a channel of tokens. The channel is
closed after the final token (TokenEOF or TokenError) has been sent.
*/
func Lex(name string, input string) chan LexToken {
	l := &lexer{name, input, 0, 0, 0, 0, 0, make(chan LexToken)}
	go l.run()
	return l.tokens
}

/*
run is the main loop of the lexer.
*/
func (l *lexer) run() {
	for state := lexToken; state != nil; {
		state = state(l)
	}
	close(l.tokens)
}

/*
next returns the next rune in the input and advances the pointer. If peek
is >0 the nth rune ahead is returned without advancing.
*/
func (l *lexer) next(peek int) rune {
	if l.pos >= len(l.input) {
		return RuneEOF
	}

	pos := l.pos
	if peek > 0 {
		pos += peek - 1
	}
	if pos >= len(l.input) {
		return RuneEOF
	}

	r, w := utf8.DecodeRuneInString(l.input[pos:])

	if peek == 0 {
		l.width = w
		l.pos += l.width
	}

	return r
}

/*
backup moves the pointer one rune back.
*/
func (l *lexer) backup() {
	l.pos -= l.width
}

/*
startNew marks the beginning of a new token.
*/
func (l *lexer) startNew() {
	l.start = l.pos
}

/*
emit passes a token with the scanned lexeme back to the client.
*/
func (l *lexer) emit(id LexTokenID) {
	l.emitValue(id, l.input[l.start:l.pos])
}

/*
emitValue passes a token with an explicit value back to the client.
*/
func (l *lexer) emitValue(id LexTokenID, val string) {
	l.tokens <- LexToken{id, val, l.start, l.line + 1, l.start - l.lastnl + 1}
}

/*
emitError passes an error token back to the client and stops lexing.
*/
func (l *lexer) emitError(msg string) lexFunc {
	l.tokens <- LexToken{TokenError, msg, l.start, l.line + 1, l.start - l.lastnl + 1}
	return nil
}

// State functions
// ===============

/*
lexToken is the lexer's main dispatch state.
*/
func lexToken(l *lexer) lexFunc {

	if !skipWhiteSpaceAndComments(l) {
		l.startNew()
		l.emit(TokenEOF)
		return nil
	}

	r := l.next(0)

	switch {

	case r == '\'':
		l.backup()
		return lexString

	case unicode.IsDigit(r):
		l.backup()
		return lexNumber

	case isIdentStart(r):
		l.backup()
		return lexIdentifier

	default:
		l.backup()
		return lexOperator
	}
}

/*
skipWhiteSpaceAndComments consumes runs of whitespace and `//` line
comments, coalescing both into the DELETE category the spec describes
(they are simply never emitted as tokens). Returns false at end of input.
*/
func skipWhiteSpaceAndComments(l *lexer) bool {
	for {
		r := l.next(0)

		if r == RuneEOF {
			return false
		}

		if r == '\n' {
			l.line++
			l.lastnl = l.pos
			continue
		}

		if unicode.IsSpace(r) {
			continue
		}

		if r == '/' && l.next(1) == '/' {
			l.next(0) // consume the second '/'
			for {
				r = l.next(0)
				if r == RuneEOF || r == '\n' {
					break
				}
			}
			if r == '\n' {
				l.line++
				l.lastnl = l.pos
			}
			if r == RuneEOF {
				return false
			}
			continue
		}

		l.backup()
		return true
	}
}

/*
isIdentStart reports whether r can start an identifier.
*/
func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) && r < utf8.RuneSelf
}

/*
isIdentPart reports whether r can continue an identifier.
*/
func isIdentPart(r rune) bool {
	return (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') && r < utf8.RuneSelf
}

/*
lexIdentifier lexes an identifier and reclassifies it to a keyword token
if it matches the reserved set (the "screener" step, folded into the
lexer as ECAL folds DELETE-dropping into its own token loop).
*/
func lexIdentifier(l *lexer) lexFunc {
	l.startNew()

	r := l.next(0)
	for isIdentPart(r) {
		r = l.next(0)
	}
	if r != RuneEOF {
		l.backup()
	}

	word := l.input[l.start:l.pos]

	if id, ok := KeywordSet[word]; ok {
		l.emit(id)
	} else {
		l.emit(TokenIDENTIFIER)
	}

	return lexToken
}

/*
lexNumber lexes a maximal run of digits. If the digit run is immediately
followed by a letter the lexeme is rejected as invalid (prevents silently
accepting "123abc").
*/
func lexNumber(l *lexer) lexFunc {
	l.startNew()

	r := l.next(0)
	for unicode.IsDigit(r) {
		r = l.next(0)
	}

	if r != RuneEOF && isIdentPart(r) {
		// Merged identifier/number lexeme - consume the rest and report it

		for isIdentPart(r) {
			r = l.next(0)
		}
		if r != RuneEOF {
			l.backup()
		}
		return l.emitError(fmt.Sprintf("Cannot parse '%s' as a number", l.input[l.start:l.pos]))
	}

	if r != RuneEOF {
		l.backup()
	}

	l.emit(TokenINTEGER)

	return lexToken
}

/*
lexString lexes a single-quoted string literal. Newlines are permitted
inside the literal (the line counter keeps advancing); \n and \t are
recognized but left unexpanded here - expansion only happens inside the
Print builtin, per spec.
*/
func lexString(l *lexer) lexFunc {
	l.startNew()

	l.next(0) // consume opening quote

	var buf strings.Builder

	for {
		r := l.next(0)

		if r == RuneEOF {
			return l.emitError("Unterminated string literal")
		}

		if r == '\'' {
			break
		}

		if r == '\n' {
			l.line++
			l.lastnl = l.pos
		}

		if r == '\\' {
			nr := l.next(0)
			if nr == RuneEOF {
				return l.emitError("Unterminated string literal")
			}
			buf.WriteRune('\\')
			buf.WriteRune(nr)
			continue
		}

		buf.WriteRune(r)
	}

	l.emitValue(TokenSTRING, buf.String())

	return lexToken
}

/*
lexOperator lexes an operator or grouping symbol, preferring the
two-character forms "**" and "->" over single-character ones.
*/
func lexOperator(l *lexer) lexFunc {
	l.startNew()

	r := l.next(1)
	r2 := l.next(2)

	if id, ok := SymbolMap[string(r)+string(r2)]; ok {
		l.next(0)
		l.next(0)
		l.emit(id)
		return lexToken
	}

	if id, ok := SymbolMap[string(r)]; ok {
		l.next(0)
		l.emit(id)
		return lexToken
	}

	l.next(0)
	return l.emitError(fmt.Sprintf("Unexpected character %q", r))
}
