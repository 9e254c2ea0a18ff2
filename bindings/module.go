// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
)

// ErrInvalidHandle is the panic value raised when a disposed module, a disposed
// context or a deleted value is used.
var ErrInvalidHandle = errors.New("bindings: use of invalid handle")

// ModuleRef designates an IR module.
type ModuleRef struct {
	m *moduleData
}

type moduleData struct {
	ctx   *contextData
	ident string
	ir    *ir.Module
}

// IsNull reports whether m is the null module.
func (m ModuleRef) IsNull() bool {
	return m.m == nil
}

// ModuleCreateWithName creates an empty module in the global context.
func ModuleCreateWithName(name string) ModuleRef {
	return ModuleCreateWithNameInContext(name, GetGlobalContext())
}

// ModuleCreateWithNameInContext creates an empty module owned by c. The name becomes
// both the module identifier and its source file name.
func ModuleCreateWithNameInContext(name string, c ContextRef) ModuleRef {
	m := ir.NewModule()
	m.SourceFilename = name
	return ModuleRef{m: newModuleData(c.live(), name, m)}
}

func newModuleData(cd *contextData, ident string, m *ir.Module) *moduleData {
	md := &moduleData{ctx: cd, ident: ident, ir: m}
	cd.adopt(md)
	return md
}

// GetModuleContext returns the context owning m.
func GetModuleContext(m ModuleRef) ContextRef {
	return ContextRef{c: m.live().ctx}
}

// DisposeModule releases m. The handle, and every value handle into m, becomes invalid.
// Releasing an already released module, or one whose context was disposed, does nothing.
func DisposeModule(m ModuleRef) {
	md := m.m
	if md == nil || md.ir == nil {
		return
	}
	md.ctx.forget(md)
	md.release()
}

func (md *moduleData) release() {
	for _, f := range md.ir.Funcs {
		f.Parent = nil
	}
	md.ir = nil
}

// GetModuleIdentifier returns the identifier m was created or parsed with.
func GetModuleIdentifier(m ModuleRef) string {
	return m.live().ident
}

// SetModuleIdentifier renames m.
func SetModuleIdentifier(m ModuleRef, ident string) {
	m.live().ident = ident
}

// GetTarget returns the target triple of m.
func GetTarget(m ModuleRef) string {
	return m.live().ir.TargetTriple
}

// SetTarget sets the target triple of m.
func SetTarget(m ModuleRef, triple string) {
	m.live().ir.TargetTriple = triple
}

// GetDataLayout returns the data layout string of m.
func GetDataLayout(m ModuleRef) string {
	return m.live().ir.DataLayout
}

// SetDataLayout sets the data layout string of m.
func SetDataLayout(m ModuleRef, layout string) {
	m.live().ir.DataLayout = layout
}

// GetModuleIR exposes the backend representation of m.
func GetModuleIR(m ModuleRef) *ir.Module {
	return m.live().ir
}

// DumpModule prints the textual form of m to stderr.
func DumpModule(m ModuleRef) {
	if err := printModule(os.Stderr, m.live()); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// PrintModuleToString returns the textual form of m. A module that cannot be printed,
// e.g. one with a block lacking its terminator, yields the printer error as a comment.
func PrintModuleToString(m ModuleRef) string {
	var sb strings.Builder
	if err := printModule(&sb, m.live()); err != nil {
		return fmt.Sprintf("; %v\n", err)
	}
	return sb.String()
}

// PrintModuleToFile writes the textual form of m to path. It returns 0 on success,
// otherwise 1 and a message the caller must dispose.
func PrintModuleToFile(m ModuleRef, path string) (int, Message) {
	md := m.live()
	f, err := os.Create(path)
	if err != nil {
		return 1, newMessage(err.Error())
	}
	perr := printModule(f, md)
	if err := f.Close(); perr == nil {
		perr = err
	}
	if perr != nil {
		return 1, newMessage(perr.Error())
	}
	return 0, Message{}
}

// CloneModule returns a copy of m in the same context. The copy is made by printing
// and re-reading m, so a module the printer rejects cannot be cloned.
func CloneModule(m ModuleRef) (ModuleRef, error) {
	md := m.live()
	src, err := assemble(md)
	if err != nil {
		return ModuleRef{}, fmt.Errorf("clone module %q: %w", md.ident, err)
	}
	mod, err := disassemble(md.ident, src)
	if err != nil {
		return ModuleRef{}, fmt.Errorf("clone module %q: %w", md.ident, err)
	}
	return ModuleRef{m: newModuleData(md.ctx, md.ident, mod)}, nil
}

func (m ModuleRef) live() *moduleData {
	if m.m == nil || m.m.ir == nil {
		panic(ErrInvalidHandle)
	}
	return m.m
}

// printModule writes md with llir's printer, which panics on structurally broken
// input rather than returning an error.
func printModule(w io.Writer, md *moduleData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot print module %q: %v", md.ident, r)
		}
	}()
	if _, err := fmt.Fprintf(w, "; ModuleID = '%s'\n", md.ident); err != nil {
		return err
	}
	_, err = md.ir.WriteTo(w)
	return err
}
