// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"irkit/bindings"
)

type parseFunc func(bindings.ContextRef, *bindings.MemoryBuffer) (bindings.ModuleRef, bindings.Message, int)

// ReadBitcode decodes buf into a module of the global context. The buffer stays owned
// by the caller.
func ReadBitcode(buf *bindings.MemoryBuffer) (*Module, error) {
	return ReadBitcodeInContext(nil, buf)
}

// ReadBitcodeInContext decodes buf into a module of ctx, or of the global context if
// ctx is nil.
func ReadBitcodeInContext(ctx *Context, buf *bindings.MemoryBuffer) (*Module, error) {
	return parse(ctx, buf, bindings.ParseBitcodeInContext)
}

// ReadBitcodeBytes decodes data into a module of the global context.
func ReadBitcodeBytes(data []byte) (*Module, error) {
	buf := bindings.CreateMemoryBufferWithMemoryRange(data, "<memory>")
	defer bindings.DisposeMemoryBuffer(buf)
	return ReadBitcode(buf)
}

// ReadBitcodeFile decodes the file at path into a module of the global context.
func ReadBitcodeFile(path string) (*Module, error) {
	return readFile(nil, path, bindings.ParseBitcodeInContext)
}

// ParseAssembly parses LLVM assembly text into a module of ctx (nil for the global
// context) identified as name.
func ParseAssembly(ctx *Context, name string, src []byte) (*Module, error) {
	buf := bindings.CreateMemoryBufferWithMemoryRange(src, name)
	defer bindings.DisposeMemoryBuffer(buf)
	return parse(ctx, buf, bindings.ParseIRInContext)
}

// ParseAssemblyFile parses the LLVM assembly file at path into a module of the global
// context.
func ParseAssemblyFile(path string) (*Module, error) {
	return readFile(nil, path, bindings.ParseIRInContext)
}

func readFile(ctx *Context, path string, fn parseFunc) (*Module, error) {
	buf, msg, status := bindings.CreateMemoryBufferWithContentsOfFile(path)
	if status != 0 {
		defer bindings.DisposeMessage(msg)
		return nil, &ParseError{Source: path, Msg: msg.String()}
	}
	defer bindings.DisposeMemoryBuffer(buf)
	return parse(ctx, buf, fn)
}

func parse(ctx *Context, buf *bindings.MemoryBuffer, fn parseFunc) (*Module, error) {
	cref := bindings.GetGlobalContext()
	if ctx != nil {
		cref = ctx.ref
	}
	ref, msg, status := fn(cref, buf)
	defer bindings.DisposeMessage(msg)
	if status != 0 {
		return nil, &ParseError{Source: bindings.GetBufferName(buf), Msg: msg.String()}
	}
	return FromRef(ref), nil
}
