// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/bindings"
	"irkit/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	color.NoColor = true
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetFileDescriptor(os.Stdout) })
	return &buf
}

func load(t *testing.T, fn string, cfg Config) *Module {
	t.Helper()
	ctx := NewContext()
	t.Cleanup(ctx.Dispose)
	cfg.Context = ctx
	m, err := Load(fn, cfg)
	require.Nil(t, err)
	t.Cleanup(m.Dispose)
	return m
}

func TestLoadAssembly(t *testing.T) {
	m := load(t, testFile("hello.ll"), DefaultConfig())

	assert.Equal(t, testFile("hello.ll"), m.Identifier())
	assert.Equal(t, "x86_64-unknown-linux-gnu", m.Target())
	assert.ElementsMatch(t, []string{"puts", "main"}, m.Functions().Names())
	assert.ElementsMatch(t, []string{"counter", "name"}, m.Globals().Names())
	assert.True(t, m.Functions().Named("puts").IsDeclaration())
	assert.False(t, m.Functions().Named("main").IsDeclaration())
	assert.Nil(t, m.Globals().Named("name").Initializer())
}

func TestLoadOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Target = "riscv64-unknown-linux-gnu"
	cfg.DataLayout = "e-m:e-p:64:64-i64:64-i128:128-n64-S128"
	m := load(t, testFile("hello.ll"), cfg)

	assert.Equal(t, cfg.Target, m.Target())
	assert.Equal(t, cfg.DataLayout, m.DataLayout())
}

func TestLoadBitcode(t *testing.T) {
	src := load(t, testFile("hello.ll"), DefaultConfig())
	dir := t.TempDir()

	for _, fn := range []string{"hello.bc", "hello"} {
		t.Run(fn, func(t *testing.T) {
			path := filepath.Join(dir, fn)
			require.True(t, src.WriteBitcode(PathTarget(path)))

			m := load(t, path, DefaultConfig())
			assert.Equal(t, src.Identifier(), m.Identifier())
			assert.Equal(t, src.Functions().Names(), m.Functions().Names())
			assert.ElementsMatch(t, src.Globals().Names(), m.Globals().Names())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.bc")
	require.Nil(t, os.WriteFile(garbage, []byte("not a module"), 0600))

	testCases := []struct {
		name string
		fn   string
	}{
		{"missing", filepath.Join(dir, "missing.ll")},
		{"garbage", garbage},
		{"broken", testFile("broken.ll")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := bindings.OutstandingMessages()
			m, err := Load(tc.fn, DefaultConfig())
			assert.Nil(t, m)
			require.NotNil(t, err)

			var (
				perr *ParseError
				verr *VerificationError
			)
			assert.True(t, errors.As(err, &perr) || errors.As(err, &verr))
			assert.Equal(t, before, bindings.OutstandingMessages())
		})
	}
}

func TestLoadWithoutVerify(t *testing.T) {
	ctx, m := newTestModule(t, "unchecked")
	m.Functions().Add("f", ctx.FuncType(ctx.Int(32)), func(f *Function) {
		f.Def().NewBlock("entry").NewRet(nil)
	})
	fn := filepath.Join(t.TempDir(), "unchecked.ll")
	require.Nil(t, m.WriteAssembly(fn))

	cfg := DefaultConfig()
	cfg.Verify = false
	cfg.Context = ctx
	loaded, err := Load(fn, cfg)
	if err != nil {
		// the assembly reader may already refuse the return
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		return
	}
	defer loaded.Dispose()
	assert.NotNil(t, loaded.Verify())

	cfg.Verify = true
	_, err = Load(fn, cfg)
	var verr *VerificationError
	assert.True(t, errors.As(err, &verr))
	// the rejected module is released, the two others remain
	assert.Equal(t, 2, bindings.ContextModuleCount(ctx.Ref()))
}

func TestSummarize(t *testing.T) {
	m := load(t, testFile("hello.ll"), DefaultConfig())
	s := m.Summarize()

	assert.Equal(t, m.Identifier(), s.Identifier)
	assert.Equal(t, "x86_64-unknown-linux-gnu", s.Target)
	assert.ElementsMatch(t, []EntitySummary{
		{Name: "puts", Type: "i32 (i8*)", Declaration: true},
		{Name: "main", Type: "i32 ()"},
	}, s.Functions)
	assert.ElementsMatch(t, []EntitySummary{
		{Name: "counter", Type: "i32"},
		{Name: "name", Type: "i8", Declaration: true},
	}, s.Globals)
	assert.Equal(t, m.Identifier()+": 2 functions, 2 globals", s.String())

	buf := captureLog(t)
	m.PrintSummary()
	out := buf.String()
	assert.Contains(t, out, "== SUMMARY")
	assert.Contains(t, out, "target      : x86_64-unknown-linux-gnu")
	assert.Contains(t, out, "Functions (2)")
	assert.Contains(t, out, "Globals (2)")
	assert.Contains(t, out, "declare  puts")
	assert.Contains(t, out, "external name")
}

func TestDiff(t *testing.T) {
	a := load(t, testFile("hello.ll"), DefaultConfig())
	b := load(t, testFile("counter.ll"), DefaultConfig())

	assert.Empty(t, a.Diff(a))
	assert.Equal(t, []DiffEntry{
		{Kind: Added, Name: "tick", After: "void ()"},
		{Kind: Changed, Global: true, Name: "counter", Before: "i32", After: "i64"},
		{Kind: Removed, Global: true, Name: "name", Before: "i8"},
		{Kind: Added, Global: true, Name: "total", After: "i32"},
	}, a.Diff(b))

	buf := captureLog(t)
	assert.Equal(t, 0, a.PrintDiff(a))
	assert.Empty(t, buf.String())

	assert.Equal(t, 4, a.PrintDiff(b))
	out := buf.String()
	assert.Contains(t, out, "+ func   @tick void ()")
	assert.Contains(t, out, "~ global @counter i32 --> i64")
	assert.Contains(t, out, "- global @name i8")
}
