// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// ValueRef designates a function or a global variable of a module.
type ValueRef struct {
	mod *moduleData
	fn  *ir.Func
	gv  *ir.Global
}

// IsNull reports whether v is the null value.
func (v ValueRef) IsNull() bool {
	return v.fn == nil && v.gv == nil
}

// IsAFunction reports whether v designates a function.
func IsAFunction(v ValueRef) bool {
	return v.fn != nil
}

// IsAGlobalVariable reports whether v designates a global variable.
func IsAGlobalVariable(v ValueRef) bool {
	return v.gv != nil
}

// GetValueName returns the symbol name of v, empty if v is unnamed.
func GetValueName(v ValueRef) string {
	switch {
	case v.fn != nil:
		return v.fn.GlobalName
	case v.gv != nil:
		return v.gv.GlobalName
	}
	panic(ErrInvalidHandle)
}

// GetFunctionIR exposes the backend function behind v, or nil if v is not a function.
func GetFunctionIR(v ValueRef) *ir.Func {
	return v.fn
}

// GetGlobalIR exposes the backend global behind v, or nil if v is not a global.
func GetGlobalIR(v ValueRef) *ir.Global {
	return v.gv
}

// AddFunction declares a function named name with signature sig in m. If the name is
// taken by another function or global, a numeric suffix makes it unique.
func AddFunction(m ModuleRef, name string, sig *types.FuncType) ValueRef {
	md := m.live()
	params := make([]*ir.Param, len(sig.Params))
	for i, t := range sig.Params {
		params[i] = ir.NewParam("", t)
	}
	f := md.ir.NewFunc(md.uniqueName(name), sig.RetType, params...)
	f.Sig.Variadic = sig.Variadic
	return ValueRef{mod: md, fn: f}
}

// DeleteFunction removes v from its module. Deleting an already deleted function does
// nothing.
func DeleteFunction(v ValueRef) {
	md := v.module()
	if i := indexOf(md.ir.Funcs, v.fn); i >= 0 {
		md.ir.Funcs = append(md.ir.Funcs[:i], md.ir.Funcs[i+1:]...)
		v.fn.Parent = nil
	}
}

// GetFirstFunction returns the first function of m, or null.
func GetFirstFunction(m ModuleRef) ValueRef {
	md := m.live()
	return md.funcAt(0)
}

// GetLastFunction returns the last function of m, or null.
func GetLastFunction(m ModuleRef) ValueRef {
	md := m.live()
	return md.funcAt(len(md.ir.Funcs) - 1)
}

// GetNextFunction returns the function after v, or null at the end. A deleted v has
// no successor.
func GetNextFunction(v ValueRef) ValueRef {
	md := v.module()
	if i := indexOf(md.ir.Funcs, v.fn); i >= 0 {
		return md.funcAt(i + 1)
	}
	return ValueRef{}
}

// GetPreviousFunction returns the function before v, or null at the start.
func GetPreviousFunction(v ValueRef) ValueRef {
	md := v.module()
	if i := indexOf(md.ir.Funcs, v.fn); i >= 0 {
		return md.funcAt(i - 1)
	}
	return ValueRef{}
}

// GetNamedFunction looks a function up by name, returning null if there is none.
// Unnamed functions are never found.
func GetNamedFunction(m ModuleRef, name string) ValueRef {
	md := m.live()
	if name == "" {
		return ValueRef{}
	}
	for _, f := range md.ir.Funcs {
		if f.GlobalName == name {
			return ValueRef{mod: md, fn: f}
		}
	}
	return ValueRef{}
}

// AddGlobal declares an external global variable of type typ in m. Names collide the
// same way as in AddFunction.
func AddGlobal(m ModuleRef, typ types.Type, name string) ValueRef {
	md := m.live()
	g := md.ir.NewGlobal(md.uniqueName(name), typ)
	g.Linkage = enum.LinkageExternal
	return ValueRef{mod: md, gv: g}
}

// DeleteGlobal removes v from its module. Deleting an already deleted global does
// nothing.
func DeleteGlobal(v ValueRef) {
	md := v.module()
	if i := indexOf(md.ir.Globals, v.gv); i >= 0 {
		md.ir.Globals = append(md.ir.Globals[:i], md.ir.Globals[i+1:]...)
	}
}

// GetFirstGlobal returns the first global variable of m, or null.
func GetFirstGlobal(m ModuleRef) ValueRef {
	md := m.live()
	return md.globalAt(0)
}

// GetLastGlobal returns the last global variable of m, or null.
func GetLastGlobal(m ModuleRef) ValueRef {
	md := m.live()
	return md.globalAt(len(md.ir.Globals) - 1)
}

// GetNextGlobal returns the global after v, or null at the end.
func GetNextGlobal(v ValueRef) ValueRef {
	md := v.module()
	if i := indexOf(md.ir.Globals, v.gv); i >= 0 {
		return md.globalAt(i + 1)
	}
	return ValueRef{}
}

// GetPreviousGlobal returns the global before v, or null at the start.
func GetPreviousGlobal(v ValueRef) ValueRef {
	md := v.module()
	if i := indexOf(md.ir.Globals, v.gv); i >= 0 {
		return md.globalAt(i - 1)
	}
	return ValueRef{}
}

// GetNamedGlobal looks a global variable up by name, returning null if there is none.
// Unnamed globals are never found.
func GetNamedGlobal(m ModuleRef, name string) ValueRef {
	md := m.live()
	if name == "" {
		return ValueRef{}
	}
	for _, g := range md.ir.Globals {
		if g.GlobalName == name {
			return ValueRef{mod: md, gv: g}
		}
	}
	return ValueRef{}
}

func (v ValueRef) module() *moduleData {
	if v.IsNull() || v.mod == nil || v.mod.ir == nil {
		panic(ErrInvalidHandle)
	}
	return v.mod
}

func (md *moduleData) funcAt(i int) ValueRef {
	if i < 0 || i >= len(md.ir.Funcs) {
		return ValueRef{}
	}
	return ValueRef{mod: md, fn: md.ir.Funcs[i]}
}

func (md *moduleData) globalAt(i int) ValueRef {
	if i < 0 || i >= len(md.ir.Globals) {
		return ValueRef{}
	}
	return ValueRef{mod: md, gv: md.ir.Globals[i]}
}

// uniqueName returns name, or name with the first free ".N" suffix if a function or
// global already uses it. Unnamed values stay unnamed.
func (md *moduleData) uniqueName(name string) string {
	if name == "" || !md.hasSymbol(name) {
		return name
	}
	for n := 1; ; n++ {
		cand := fmt.Sprintf("%s.%d", name, n)
		if !md.hasSymbol(cand) {
			return cand
		}
	}
}

func (md *moduleData) hasSymbol(name string) bool {
	for _, f := range md.ir.Funcs {
		if f.GlobalName == name {
			return true
		}
	}
	for _, g := range md.ir.Globals {
		if g.GlobalName == name {
			return true
		}
	}
	return false
}

func indexOf[T comparable](s []T, x T) int {
	for i, e := range s {
		if e == x {
			return i
		}
	}
	return -1
}
