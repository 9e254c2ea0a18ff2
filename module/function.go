// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"irkit/bindings"
)

// Function is a view of one function of a module. It owns nothing; it is valid while
// the function exists and its module is live.
type Function struct {
	ref bindings.ValueRef
}

func newFunction(ref bindings.ValueRef) *Function {
	return &Function{ref: ref}
}

// Ref returns the backend handle.
func (f *Function) Ref() bindings.ValueRef {
	return f.ref
}

// Name returns the symbol name.
func (f *Function) Name() string {
	return bindings.GetValueName(f.ref)
}

// Equal reports whether f and o designate the same function.
func (f *Function) Equal(o *Function) bool {
	return o != nil && f.ref == o.ref
}

// Type returns the signature.
func (f *Function) Type() *types.FuncType {
	return f.Def().Sig
}

// IsDeclaration reports whether f has no body.
func (f *Function) IsDeclaration() bool {
	return len(f.Def().Blocks) == 0
}

// Def exposes the backend function, for building its body.
func (f *Function) Def() *ir.Func {
	return bindings.GetFunctionIR(f.ref)
}

// FunctionCollection is the collection of functions of a module.
type FunctionCollection struct {
	Collection[*Function]
}

var functionOps = &refOps{
	first:    bindings.GetFirstFunction,
	last:     bindings.GetLastFunction,
	next:     bindings.GetNextFunction,
	previous: bindings.GetPreviousFunction,
	named:    bindings.GetNamedFunction,
	remove:   bindings.DeleteFunction,
}

func newFunctionCollection(m *Module) *FunctionCollection {
	return &FunctionCollection{Collection[*Function]{
		mod:  m,
		ops:  functionOps,
		wrap: newFunction,
	}}
}

// Add declares a function called name with signature sig and runs build on it, e.g. to
// give it a body. A taken name gets a numeric suffix.
func (c *FunctionCollection) Add(name string, sig *types.FuncType, build ...func(*Function)) *Function {
	f := newFunction(bindings.AddFunction(c.mod.ref, name, sig))
	for _, fn := range build {
		fn(f)
	}
	return f
}
