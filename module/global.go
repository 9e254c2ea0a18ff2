// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irkit/bindings"
)

// GlobalValue is a view of one global variable of a module.
type GlobalValue struct {
	ref bindings.ValueRef
}

func newGlobalValue(ref bindings.ValueRef) *GlobalValue {
	return &GlobalValue{ref: ref}
}

// Ref returns the backend handle.
func (g *GlobalValue) Ref() bindings.ValueRef {
	return g.ref
}

// Name returns the symbol name.
func (g *GlobalValue) Name() string {
	return bindings.GetValueName(g.ref)
}

// Equal reports whether g and o designate the same global.
func (g *GlobalValue) Equal(o *GlobalValue) bool {
	return o != nil && g.ref == o.ref
}

// ContentType returns the type of the stored value.
func (g *GlobalValue) ContentType() types.Type {
	return g.Def().ContentType
}

// Initializer returns the initial value, or nil for a declaration.
func (g *GlobalValue) Initializer() constant.Constant {
	return g.Def().Init
}

// SetInitializer turns g into a definition with initial value init. The linkage is
// reset from external to the default.
func (g *GlobalValue) SetInitializer(init constant.Constant) {
	d := g.Def()
	d.Init = init
	if init != nil && d.Linkage == enum.LinkageExternal {
		d.Linkage = enum.LinkageNone
	}
}

// IsConstant reports whether g is immutable.
func (g *GlobalValue) IsConstant() bool {
	return g.Def().Immutable
}

// SetConstant marks g immutable or not.
func (g *GlobalValue) SetConstant(immutable bool) {
	g.Def().Immutable = immutable
}

// Linkage returns the linkage.
func (g *GlobalValue) Linkage() enum.Linkage {
	return g.Def().Linkage
}

// SetLinkage sets the linkage.
func (g *GlobalValue) SetLinkage(l enum.Linkage) {
	g.Def().Linkage = l
}

// Def exposes the backend global.
func (g *GlobalValue) Def() *ir.Global {
	return bindings.GetGlobalIR(g.ref)
}

// GlobalCollection is the collection of global variables of a module.
type GlobalCollection struct {
	Collection[*GlobalValue]
}

var globalOps = &refOps{
	first:    bindings.GetFirstGlobal,
	last:     bindings.GetLastGlobal,
	next:     bindings.GetNextGlobal,
	previous: bindings.GetPreviousGlobal,
	named:    bindings.GetNamedGlobal,
	remove:   bindings.DeleteGlobal,
}

func newGlobalCollection(m *Module) *GlobalCollection {
	return &GlobalCollection{Collection[*GlobalValue]{
		mod:  m,
		ops:  globalOps,
		wrap: newGlobalValue,
	}}
}

// Add declares an external global variable of type typ called name.
func (c *GlobalCollection) Add(typ types.Type, name string) *GlobalValue {
	return newGlobalValue(bindings.AddGlobal(c.mod.ref, typ, name))
}
