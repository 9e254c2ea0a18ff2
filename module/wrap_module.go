// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"fmt"

	"irkit/bindings"
	"irkit/logger"
)

// Module wraps one backend module. It has a single logical owner and must not be
// copied; pass *Module around.
//
// A module is live from construction until Dispose. Calling anything but Dispose on
// a disposed module, or using wrappers obtained from it, is a caller error that makes
// the backend panic with bindings.ErrInvalidHandle.
type Module struct {
	_   noCopy
	ref bindings.ModuleRef

	// created on first use, see Functions and Globals
	functions *FunctionCollection
	globals   *GlobalCollection
}

// noCopy makes go vet's copylocks check flag copies of Module.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Option configures a module built by New.
type Option func(*options)

type options struct {
	ctx    *Context
	target string
	layout string
	build  []func(*Module)
}

// InContext places the module in ctx instead of the global context.
func InContext(ctx *Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithTarget sets the target triple of the new module.
func WithTarget(triple string) Option {
	return func(o *options) { o.target = triple }
}

// WithDataLayout sets the data layout of the new module.
func WithDataLayout(layout string) Option {
	return func(o *options) { o.layout = layout }
}

// With runs fn on the new module before New returns.
func With(fn func(*Module)) Option {
	return func(o *options) { o.build = append(o.build, fn) }
}

// New creates an empty module named name. Names are not validated; empty or duplicate
// names are accepted as the backend accepts them.
func New(name string, opts ...Option) *Module {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var ref bindings.ModuleRef
	if o.ctx != nil {
		ref = bindings.ModuleCreateWithNameInContext(name, o.ctx.ref)
	} else {
		ref = bindings.ModuleCreateWithName(name)
	}
	m := FromRef(ref)
	if o.target != "" {
		m.SetTarget(o.target)
	}
	if o.layout != "" {
		m.SetDataLayout(o.layout)
	}
	for _, fn := range o.build {
		fn(m)
	}
	logger.Debugf("new module '%s'", name)
	return m
}

// FromRef wraps an existing backend module without creating a new one.
func FromRef(ref bindings.ModuleRef) *Module {
	return &Module{ref: ref}
}

// Ref returns the backend handle, or the null handle once m is disposed.
func (m *Module) Ref() bindings.ModuleRef {
	return m.ref
}

// Disposed reports whether Dispose has been called.
func (m *Module) Disposed() bool {
	return m.ref.IsNull()
}

// Context returns the context owning m. It is queried from the backend on every call.
func (m *Module) Context() *Context {
	return &Context{ref: bindings.GetModuleContext(m.ref)}
}

// Dispose releases the backend module. Further calls do nothing.
func (m *Module) Dispose() {
	if m.ref.IsNull() {
		return
	}
	bindings.DisposeModule(m.ref)
	m.ref = bindings.ModuleRef{}
	m.functions = nil
	m.globals = nil
}

// Identifier returns the name m was created or parsed with.
func (m *Module) Identifier() string {
	return bindings.GetModuleIdentifier(m.ref)
}

// Target returns the target triple.
func (m *Module) Target() string {
	return bindings.GetTarget(m.ref)
}

// SetTarget sets the target triple.
func (m *Module) SetTarget(triple string) {
	bindings.SetTarget(m.ref, triple)
}

// DataLayout returns the data layout string.
func (m *Module) DataLayout() string {
	return bindings.GetDataLayout(m.ref)
}

// SetDataLayout sets the data layout string.
func (m *Module) SetDataLayout(layout string) {
	bindings.SetDataLayout(m.ref, layout)
}

// Functions returns the functions of m. The collection is created on first use.
func (m *Module) Functions() *FunctionCollection {
	if m.functions == nil {
		m.functions = newFunctionCollection(m)
	}
	return m.functions
}

// Globals returns the global variables of m. The collection is created on first use.
func (m *Module) Globals() *GlobalCollection {
	if m.globals == nil {
		m.globals = newGlobalCollection(m)
	}
	return m.globals
}

// Dump writes the textual form of m to stderr.
func (m *Module) Dump() {
	bindings.DumpModule(m.ref)
}

// String returns the textual form of m.
func (m *Module) String() string {
	if m.ref.IsNull() {
		return "; disposed module\n"
	}
	return bindings.PrintModuleToString(m.ref)
}

// WriteAssembly writes the textual form of m to the file at path.
func (m *Module) WriteAssembly(path string) error {
	status, msg := bindings.PrintModuleToFile(m.ref, path)
	defer bindings.DisposeMessage(msg)
	if status != 0 {
		return fmt.Errorf("write %s: %s", path, msg.String())
	}
	return nil
}

// Clone returns an independent copy of m in the same context.
func (m *Module) Clone() (*Module, error) {
	ref, err := bindings.CloneModule(m.ref)
	if err != nil {
		return nil, err
	}
	return FromRef(ref), nil
}
