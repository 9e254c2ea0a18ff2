// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import (
	"sync"

	"github.com/llir/llvm/ir/types"
)

// ContextRef designates a compilation context. A context owns the modules created in
// it and the uniqued types handed out by the *InContext type constructors.
type ContextRef struct {
	c *contextData
}

type contextData struct {
	global   bool
	disposed bool
	modules  []*moduleData
	ints     map[uint64]*types.IntType
}

var (
	globalOnce sync.Once
	globalCtx  *contextData
)

// IsNull reports whether c is the null context.
func (c ContextRef) IsNull() bool {
	return c.c == nil
}

// ContextCreate creates a new, empty context.
func ContextCreate() ContextRef {
	return ContextRef{c: newContextData()}
}

// GetGlobalContext returns the process-wide default context.
func GetGlobalContext() ContextRef {
	globalOnce.Do(func() {
		globalCtx = newContextData()
		globalCtx.global = true
	})
	return ContextRef{c: globalCtx}
}

func newContextData() *contextData {
	return &contextData{ints: make(map[uint64]*types.IntType)}
}

// ContextDispose releases c and every module still owned by it. Disposing the global
// context is a no-op.
func ContextDispose(c ContextRef) {
	if c.c == nil || c.c.global || c.c.disposed {
		return
	}
	for _, m := range c.c.modules {
		m.release()
	}
	c.c.modules = nil
	c.c.disposed = true
}

// ContextModuleCount returns the number of live modules owned by c.
func ContextModuleCount(c ContextRef) int {
	return len(c.live().modules)
}

// IntTypeInContext returns the integer type of the given width. Repeated calls with the
// same width return the same *types.IntType.
func IntTypeInContext(c ContextRef, bits uint64) *types.IntType {
	cd := c.live()
	t, ok := cd.ints[bits]
	if !ok {
		t = types.NewInt(bits)
		cd.ints[bits] = t
	}
	return t
}

// VoidTypeInContext returns the void type.
func VoidTypeInContext(_ ContextRef) *types.VoidType {
	return types.Void
}

// FunctionType builds a function signature.
func FunctionType(ret types.Type, params []types.Type, variadic bool) *types.FuncType {
	sig := types.NewFunc(ret, params...)
	sig.Variadic = variadic
	return sig
}

func (c ContextRef) live() *contextData {
	if c.c == nil || c.c.disposed {
		panic(ErrInvalidHandle)
	}
	return c.c
}

func (cd *contextData) adopt(m *moduleData) {
	cd.modules = append(cd.modules, m)
}

func (cd *contextData) forget(m *moduleData) {
	for i, o := range cd.modules {
		if o == m {
			cd.modules = append(cd.modules[:i], cd.modules[i+1:]...)
			return
		}
	}
}
