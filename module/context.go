// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"github.com/llir/llvm/ir/types"

	"irkit/bindings"
)

// Context is a compilation scope owning modules and their uniqued types.
type Context struct {
	ref bindings.ContextRef
}

// NewContext creates an empty context. Dispose releases it together with the modules
// it still owns.
func NewContext() *Context {
	return &Context{ref: bindings.ContextCreate()}
}

// GlobalContext returns the process-wide context used when none is given.
func GlobalContext() *Context {
	return &Context{ref: bindings.GetGlobalContext()}
}

// Ref returns the backend handle of c.
func (c *Context) Ref() bindings.ContextRef {
	return c.ref
}

// Equal reports whether c and o designate the same context.
func (c *Context) Equal(o *Context) bool {
	return o != nil && c.ref == o.ref
}

// Dispose releases c. Disposing the global context does nothing.
func (c *Context) Dispose() {
	if c.ref.IsNull() {
		return
	}
	bindings.ContextDispose(c.ref)
	c.ref = bindings.ContextRef{}
}

// Int returns the integer type with the given width.
func (c *Context) Int(bits uint64) *types.IntType {
	return bindings.IntTypeInContext(c.ref, bits)
}

// Void returns the void type.
func (c *Context) Void() *types.VoidType {
	return bindings.VoidTypeInContext(c.ref)
}

// FuncType returns the signature of a function returning ret and taking params.
func (c *Context) FuncType(ret types.Type, params ...types.Type) *types.FuncType {
	return bindings.FunctionType(ret, params, false)
}
