// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"irkit/logger"
)

var verboseVisitor = false

// DebugVisitor turns on several debugging prints in the visitor.
func DebugVisitor() {
	verboseVisitor = true
}

// VisitCallback is called on every direct call found while visiting the module.
type VisitCallback func(call *ir.InstCall, caller, callee *Function)

// Visit walks the functions reachable from the entry functions through direct calls,
// depth first. Every function body is walked once; cb sees every call of it. An
// entry that names no function is an error.
func (m *Module) Visit(entry []string, cb VisitCallback) error {
	return m.walk(entry, nil, cb)
}

// Reachable returns the functions reachable from entry, entry included, in the order
// they are first visited.
func (m *Module) Reachable(entry ...string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	add := func(f *Function) {
		if !seen[f.Name()] {
			seen[f.Name()] = true
			names = append(names, f.Name())
		}
	}
	err := m.walk(entry, add, func(_ *ir.InstCall, _, callee *Function) {
		add(callee)
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// walk visits from every entry in turn, calling start before the walk of each.
func (m *Module) walk(entry []string, start func(*Function), cb VisitCallback) error {
	v := &visitor{
		funcs:   make(map[*ir.Func]*Function),
		visited: make(map[*ir.Func]bool),
		cb:      cb,
	}
	for f := range m.Functions().All() {
		v.funcs[f.Def()] = f
	}
	for _, name := range entry {
		f := m.Functions().Named(name)
		if f == nil {
			return fmt.Errorf("no function '%s' in module '%s'", name, m.Identifier())
		}
		if start != nil {
			start(f)
		}
		v.log("====================== START VISIT ==========================")
		v.visit(f)
	}
	return nil
}

type visitor struct {
	funcs   map[*ir.Func]*Function
	dep     string
	visited map[*ir.Func]bool
	cb      VisitCallback
}

func (v *visitor) enter() {
	v.dep += " "
}

func (v *visitor) leave() {
	v.dep = v.dep[:len(v.dep)-1]
}

func (v *visitor) log(args ...any) {
	if !verboseVisitor {
		return
	}
	logger.Print(v.dep)
	logger.Println(args...)
}

// callee resolves the function a call jumps to, or nil for indirect calls and inline
// assembly.
func (v *visitor) callee(call *ir.InstCall, caller *Function) *ir.Func {
	switch callee := call.Callee.(type) {
	case *ir.Func:
		return callee
	case *constant.ExprBitCast:
		if f, ok := callee.From.(*ir.Func); ok {
			return f
		}
	case *ir.InlineAsm:
		return nil
	}
	logger.Debugf("%s: ignoring indirect call through '%s'", caller.Name(), call.Callee.Ident())
	return nil
}

func (v *visitor) visit(f *Function) {
	def := f.Def()
	if v.visited[def] {
		v.log("SKIP: ", f.Name())
		return
	}
	v.visited[def] = true
	v.log("Func: ", f.Name())

	for _, block := range def.Blocks {
		for _, inst := range block.Insts {
			call, ok := inst.(*ir.InstCall)
			if !ok {
				continue
			}
			target := v.callee(call, f)
			if target == nil {
				continue
			}
			callee := v.funcs[target]
			if callee == nil {
				// the call refers to a function deleted from the module
				logger.Warnf("%s: call to '%s' outside the module", f.Name(), target.Name())
				continue
			}
			v.cb(call, f, callee)
			v.enter()
			v.visit(callee)
			v.leave()
		}
	}
}
