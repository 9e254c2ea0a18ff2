// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import "sync/atomic"

// Message is a diagnostic string allocated by the backend. Every non-null message must
// be released exactly once with DisposeMessage.
type Message struct {
	p *message
}

type message struct {
	text     string
	disposed bool
}

var outstanding atomic.Int64

func newMessage(text string) Message {
	outstanding.Add(1)
	return Message{p: &message{text: text}}
}

// IsNull reports whether m is the null message.
func (m Message) IsNull() bool {
	return m.p == nil
}

// String copies the text out of m. The null message reads as "".
func (m Message) String() string {
	if m.p == nil {
		return ""
	}
	if m.p.disposed {
		panic(ErrInvalidHandle)
	}
	return m.p.text
}

// DisposeMessage releases m. Disposing the null message does nothing; disposing a
// message twice panics.
func DisposeMessage(m Message) {
	if m.p == nil {
		return
	}
	if m.p.disposed {
		panic("bindings: message disposed twice")
	}
	m.p.disposed = true
	outstanding.Add(-1)
}

// OutstandingMessages returns how many messages have been handed out and not yet
// disposed.
func OutstandingMessages() int64 {
	return outstanding.Load()
}
