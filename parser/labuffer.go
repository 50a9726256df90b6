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
	"devt.de/krotik/common/datautil"
)

/*
LABuffer sits on top of the lexer's token channel and hands the parser
one token at a time. The grammar's ambiguities (e.g. telling an
"<ID> = E" assignment apart from an "<ID> Vb+ = E" function form) all
resolve by consuming a token and then switching on what follows it, so
the parser only ever needs the current token.
*/
type LABuffer struct {
	tokens chan LexToken
	buffer *datautil.RingBuffer
}

/*
NewLABuffer creates a new look-ahead buffer of the given size over a
token channel.
*/
func NewLABuffer(c chan LexToken, size int) *LABuffer {
	if size < 1 {
		size = 1
	}

	b := &LABuffer{c, datautil.NewRingBuffer(size)}

	for b.buffer.Size() < size {
		t, more := <-b.tokens
		b.buffer.Add(t)
		if !more || t.ID == TokenEOF || t.ID == TokenError {
			break
		}
	}

	return b
}

/*
Next pops and returns the next token, refilling the buffer from the
channel.
*/
func (b *LABuffer) Next() LexToken {
	v := b.buffer.Poll()

	if t, more := <-b.tokens; more {
		b.buffer.Add(t)
	}

	if v == nil {
		return LexToken{ID: TokenEOF}
	}

	return v.(LexToken)
}
