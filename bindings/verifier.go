// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import (
	"fmt"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// VerifierFailureAction selects what VerifyModule does when the module is broken.
type VerifierFailureAction int

//go:generate go run golang.org/x/tools/cmd/stringer -type=VerifierFailureAction
const (
	// AbortProcessAction prints the diagnostic to stderr and aborts the process.
	AbortProcessAction VerifierFailureAction = iota
	// PrintMessageAction prints the diagnostic to stderr and returns 1.
	PrintMessageAction
	// ReturnStatusAction returns 1 and the diagnostic.
	ReturnStatusAction
)

// MockAbort replaces process termination of AbortProcessAction in tests.
var MockAbort func(msg string)

// VerifyModule checks m for structural errors. It returns 1 if m is broken and 0
// otherwise, together with a message that is allocated in both cases and must be
// disposed by the caller.
func VerifyModule(m ModuleRef, action VerifierFailureAction) (int, Message) {
	md := m.live()

	v := &verifier{}
	v.module(md.ir)
	diag := v.sb.String()

	if v.broken {
		switch action {
		case AbortProcessAction:
			fmt.Fprint(os.Stderr, diag)
			abort(diag)
		case PrintMessageAction:
			fmt.Fprint(os.Stderr, diag)
		default:
		}
		return 1, newMessage(diag)
	}
	return 0, newMessage(diag)
}

func abort(msg string) {
	if MockAbort != nil {
		MockAbort(msg)
		return
	}
	fmt.Fprintln(os.Stderr, "Broken module found, compilation aborted!")
	// same exit status as SIGABRT
	os.Exit(134)
}

type verifier struct {
	sb     strings.Builder
	broken bool
}

func (v *verifier) fail(format string, args ...any) {
	v.broken = true
	fmt.Fprintf(&v.sb, format, args...)
	v.sb.WriteByte('\n')
}

func (v *verifier) module(m *ir.Module) {
	// unnamed values take no symbol
	seen := make(map[string]bool)
	symbol := func(name string) {
		if name == "" {
			return
		}
		if seen[name] {
			v.fail("Invalid redefinition of symbol '%s'", name)
		}
		seen[name] = true
	}
	for _, g := range m.Globals {
		symbol(g.GlobalName)
		v.global(g)
	}
	for _, f := range m.Funcs {
		symbol(f.GlobalName)
		v.function(f)
	}
}

func (v *verifier) global(g *ir.Global) {
	if g.ContentType == nil {
		v.fail("Global variable '%s' has no type", g.Name())
		return
	}
	if g.Init == nil {
		if g.Linkage != enum.LinkageExternal && g.Linkage != enum.LinkageExternWeak {
			v.fail("Global is external, but doesn't have external or weak linkage!\n@%s", g.Name())
		}
		return
	}
	if !g.Init.Type().Equal(g.ContentType) {
		v.fail("Global variable initializer type does not match global variable type!\n@%s", g.Name())
	}
}

func (v *verifier) function(f *ir.Func) {
	if len(f.Blocks) == 0 {
		return
	}
	ret := f.Sig.RetType
	for _, b := range f.Blocks {
		if b.Term == nil {
			v.fail("Basic Block in function '%s' does not have terminator!\nlabel %%%s", f.Name(), b.Name())
			continue
		}
		term, ok := b.Term.(*ir.TermRet)
		if !ok {
			continue
		}
		switch {
		case term.X == nil && !ret.Equal(types.Void):
			v.fail("Found return instr that returns void in function '%s' of non-void return type!", f.Name())
		case term.X != nil && !term.X.Type().Equal(ret):
			v.fail("Function return type does not match operand type of return inst!\nfunction '%s'", f.Name())
		}
	}
}
