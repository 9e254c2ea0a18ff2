// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/bindings"
)

// sample builds a small well-formed module.
func sample(t *testing.T, name string) (*Context, *Module) {
	t.Helper()
	ctx, m := newTestModule(t, name, WithTarget("x86_64-unknown-linux-gnu"))
	m.Functions().Add("main", ctx.FuncType(ctx.Int(32)), func(f *Function) {
		f.Def().NewBlock("entry").NewRet(i32(ctx, 0))
	})
	m.Functions().Add("helper", ctx.FuncType(ctx.Void(), ctx.Int(32)))
	m.Functions().Add("exit", ctx.FuncType(ctx.Void(), ctx.Int(32)))
	m.Globals().Add(ctx.Int(32), "counter").SetInitializer(i32(ctx, 3))
	m.Globals().Add(ctx.Int(8), "flag")
	require.Nil(t, m.Verify())
	return ctx, m
}

func TestBitcodeRoundTrip(t *testing.T) {
	ctx, m := sample(t, "roundtrip")

	data := m.Bitcode()
	require.NotEmpty(t, data)

	before := bindings.OutstandingMessages()
	buf := bindings.CreateMemoryBufferWithMemoryRange(data, "roundtrip.bc")
	defer bindings.DisposeMemoryBuffer(buf)
	back, err := ReadBitcodeInContext(ctx, buf)
	require.Nil(t, err)
	defer back.Dispose()
	assert.Equal(t, before, bindings.OutstandingMessages())

	assert.Equal(t, m.Identifier(), back.Identifier())
	assert.Equal(t, m.Target(), back.Target())
	assert.True(t, back.Context().Equal(ctx))
	assert.Equal(t, m.Functions().Names(), back.Functions().Names())
	assert.ElementsMatch(t, m.Globals().Names(), back.Globals().Names())
	assert.Nil(t, back.Verify())
	assert.Equal(t, "i32 3", back.Globals().Named("counter").Initializer().String())
}

func TestReadBitcodeBytes(t *testing.T) {
	_, m := sample(t, "bytes")

	back, err := ReadBitcodeBytes(m.Bitcode())
	require.Nil(t, err)
	defer back.Dispose()
	assert.True(t, back.Context().Equal(GlobalContext()))
	assert.Equal(t, []string{"main", "helper", "exit"}, back.Functions().Names())
}

func TestReadBitcodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"garbage", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"assembly", []byte("define void @f() {\nentry:\n\tret void\n}\n")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := bindings.OutstandingMessages()
			m, err := ReadBitcodeBytes(tc.data)
			assert.Nil(t, m)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "<memory>", perr.Source)
			assert.Contains(t, perr.Msg, "invalid bitcode signature")
			assert.Equal(t, before, bindings.OutstandingMessages())
		})
	}

	before := bindings.OutstandingMessages()
	_, err := ReadBitcodeFile(filepath.Join(t.TempDir(), "missing.bc"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Error(), "missing.bc")
	assert.Equal(t, before, bindings.OutstandingMessages())
}

func TestParseAssembly(t *testing.T) {
	ctx := NewContext()
	defer ctx.Dispose()

	m, err := ParseAssembly(ctx, "inline", []byte("@x = global i32 1\n"))
	require.Nil(t, err)
	defer m.Dispose()
	assert.Equal(t, "inline", m.Identifier())
	assert.Equal(t, []string{"x"}, m.Globals().Names())

	_, err = ParseAssembly(ctx, "bad", []byte("define i32 @f( {"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad", perr.Source)
	assert.Contains(t, perr.Error(), "parse error in 'bad'")
}

func TestWriteBitcodeToPath(t *testing.T) {
	_, m := sample(t, "path")
	fn := filepath.Join(t.TempDir(), "out.bc")

	assert.True(t, m.WriteBitcode(PathTarget(fn)))
	fi, err := os.Stat(fn)
	require.Nil(t, err)
	assert.Greater(t, fi.Size(), int64(0))

	back, err := ReadBitcodeFile(fn)
	require.Nil(t, err)
	defer back.Dispose()
	assert.Equal(t, m.Functions().Names(), back.Functions().Names())

	assert.False(t, m.WriteBitcode(PathTarget(filepath.Join(t.TempDir(), "no", "such", "dir.bc"))))
}

func TestWriteBitcodeToDescriptor(t *testing.T) {
	_, m := sample(t, "fd")

	assert.False(t, m.WriteBitcode(DescriptorTarget(-1)))

	f, err := os.Create(filepath.Join(t.TempDir(), "closed.bc"))
	require.Nil(t, err)
	fd := DescriptorTarget(f.Fd())
	require.Nil(t, f.Close())
	assert.False(t, m.WriteBitcode(fd))

	r, w, err := os.Pipe()
	require.Nil(t, err)
	defer r.Close()
	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()
	target := FileTarget(w)
	assert.IsType(t, DescriptorTarget(0), target)
	assert.True(t, m.WriteBitcode(target))
	require.Nil(t, w.Close())
	assert.Equal(t, m.Bitcode(), <-done)
}

func TestFileTarget(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "file.bc")
	f, err := os.Create(fn)
	require.Nil(t, err)
	defer f.Close()
	assert.Equal(t, PathTarget(fn), FileTarget(f))

	// once the name no longer leads to the open file, only the descriptor is left
	require.Nil(t, os.Remove(fn))
	assert.IsType(t, DescriptorTarget(0), FileTarget(f))

	_, m := sample(t, "file")
	assert.True(t, m.WriteBitcode(FileTarget(f)))
}

func TestWriteBrokenModule(t *testing.T) {
	ctx, m := newTestModule(t, "broken")
	m.Functions().Add("f", ctx.FuncType(ctx.Void()), func(f *Function) {
		f.Def().NewBlock("entry")
	})

	assert.Nil(t, m.Bitcode())
	assert.Nil(t, m.WriteBitcodeToBuffer())
	assert.False(t, m.WriteBitcode(PathTarget(filepath.Join(t.TempDir(), "broken.bc"))))
	_, err := m.Clone()
	assert.NotNil(t, err)
}
