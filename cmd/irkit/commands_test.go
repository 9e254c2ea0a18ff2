// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/bindings"
	"irkit/logger"
	"irkit/module"
	"irkit/tools"
)

func TestInfoLLFiles(t *testing.T) {
	for _, fn := range []string{"hello.ll", "counter.ll"} {
		t.Run(fn, func(t *testing.T) {
			buf := captureLog(t)
			err := Info([]string{testFile(fn)})
			assert.Nil(t, err)
			assert.Contains(t, buf.String(), "Functions (")
		})
	}

	captureLog(t)
	err := Info([]string{testFile("hello.ll"), testFile("missing.ll")})
	assert.Equal(t, parseError, getErrorType(err))
}

func TestVerify(t *testing.T) {
	buf := captureLog(t)
	err := Verify(context.Background(), []string{testFile("hello.ll"), testFile("counter.ll")})
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), "OK     "+testFile("hello.ll"))
	assert.Contains(t, buf.String(), "OK     "+testFile("counter.ll"))

	err = Verify(context.Background(), []string{testFile("hello.ll"), testFile("broken.ll")})
	require.NotNil(t, err)
	assert.Contains(t, []errorType{parseError, checkFail}, getErrorType(err))

	err = Verify(context.Background(), []string{testFile("missing.ll")})
	assert.Equal(t, parseError, getErrorType(err))
	assert.Equal(t, 1, getErrorCode(err))
}

func TestVerifyCancelled(t *testing.T) {
	captureLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Verify(ctx, []string{testFile("hello.ll")})
	assert.Equal(t, internalError, getErrorType(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVerifyMany(t *testing.T) {
	captureLog(t)
	prev := config.Jobs
	config.Jobs = 2
	defer func() { config.Jobs = prev }()

	var fns []string
	for i := 0; i < 8; i++ {
		fns = append(fns, testFile("hello.ll"), testFile("counter.ll"))
	}
	assert.Nil(t, Verify(context.Background(), fns))
}

func TestConvert(t *testing.T) {
	buf := captureLog(t)
	logger.SetLevel(logger.WARN)
	ll := copyTest(t, "hello.ll")
	bc := tools.ReplaceExt(ll, ".bc")

	require.Nil(t, Convert(ll, ""))
	require.Nil(t, tools.FileExists(bc))
	assert.NotContains(t, buf.String(), "writing bitcode")

	m, err := module.ReadBitcodeFile(bc)
	require.Nil(t, err)
	defer m.Dispose()
	assert.ElementsMatch(t, []string{"puts", "main"}, m.Functions().Names())

	back := filepath.Join(filepath.Dir(ll), "back.ll")
	require.Nil(t, Convert(bc, back))
	data, err := os.ReadFile(back)
	require.Nil(t, err)
	assert.Contains(t, string(data), "define i32 @main()")

	// bitcode to bitcode through a file without extension
	raw := filepath.Join(filepath.Dir(ll), "raw")
	require.Nil(t, Convert(bc, raw))
	assert.True(t, bindings.IsBitcode(mustRead(t, raw)))
	assert.Contains(t, buf.String(), "'"+raw+"' has no .ll or .bc extension, writing bitcode")

	assert.Equal(t, internalError, getErrorType(Convert(ll, ll)))
	assert.Equal(t, parseError, getErrorType(Convert(filepath.Join(t.TempDir(), "none.ll"), "")))
}

func TestConvertToStdout(t *testing.T) {
	captureLog(t)
	ll := copyTest(t, "counter.ll")
	out := filepath.Join(t.TempDir(), "stdout.bc")

	f, err := os.Create(out)
	require.Nil(t, err)
	stdout := os.Stdout
	os.Stdout = f
	err = Convert(ll, "-")
	os.Stdout = stdout
	require.Nil(t, f.Close())
	require.Nil(t, err)

	assert.True(t, bindings.IsBitcode(mustRead(t, out)))
}

func mustRead(t *testing.T, fn string) []byte {
	t.Helper()
	data, err := os.ReadFile(fn)
	require.Nil(t, err)
	return data
}

func TestDump(t *testing.T) {
	buf := captureLog(t)
	require.Nil(t, Dump(testFile("hello.ll"), ""))
	assert.Contains(t, buf.String(), "@counter = global i32 0")

	out := filepath.Join(t.TempDir(), "dump.ll")
	require.Nil(t, Dump(testFile("hello.ll"), out))
	assert.Contains(t, string(mustRead(t, out)), "declare i32 @puts(i8*")

	assert.Equal(t, internalError, getErrorType(Dump(testFile("hello.ll"), filepath.Join(out, "sub"))))
}

func TestDiff(t *testing.T) {
	buf := captureLog(t)
	assert.Nil(t, Diff(testFile("hello.ll"), testFile("hello.ll")))
	assert.Empty(t, buf.String())

	err := Diff(testFile("hello.ll"), testFile("counter.ll"))
	assert.Equal(t, checkFail, getErrorType(err))
	assert.Equal(t, 2, getErrorCode(err))
	assert.Equal(t, "", getErrorMessage(err))
	assert.Contains(t, buf.String(), "4 difference(s)")

	err = Diff(testFile("hello.ll"), testFile("missing.ll"))
	assert.Equal(t, parseError, getErrorType(err))
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		err  error
		typ  errorType
		code int
	}{
		{nil, noError, 0},
		{fmt.Errorf("plain"), internalError, 1},
		{vfail(), checkFail, 2},
		{verror(internalError, fmt.Errorf("x")), internalError, 1},
		{loadError(&module.ParseError{Msg: "bad"}), parseError, 1},
		{loadError(&module.VerificationError{Module: "m", Msg: "bad"}), checkFail, 2},
		{loadError(fmt.Errorf("wrapped: %w", &module.ParseError{Msg: "bad"})), parseError, 1},
		{loadError(os.ErrPermission), internalError, 1},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			assert.Equal(t, tc.typ, getErrorType(tc.err))
			assert.Equal(t, tc.code, getErrorCode(tc.err))
		})
	}
	assert.Equal(t, "parse error: bad", getErrorMessage(loadError(&module.ParseError{Msg: "bad"})))
	assert.Equal(t, "checkFail", checkFail.String())
	assert.Equal(t, "parseError", parseError.String())
	assert.Equal(t, "errorType(9)", errorType(9).String())
}

func TestArgs(t *testing.T) {
	assert.NotNil(t, IsArgsn(nil, nil))
	assert.Nil(t, IsArgsn(nil, []string{"a.ll"}))
	assert.True(t, isLL("a.ll"))
	assert.False(t, isLL("a.bc"))
	assert.True(t, isBC("dir/a.bc"))
	assert.False(t, isBC("a.bc.ll"))
}

func TestInfoEntry(t *testing.T) {
	prev := infoFlags.entry
	defer func() { infoFlags.entry = prev }()

	buf := captureLog(t)
	infoFlags.entry = []string{"main"}
	require.Nil(t, Info([]string{testFile("calls.ll")}))
	assert.Contains(t, buf.String(), "Unreachable (1)")

	infoFlags.entry = []string{"start"}
	assert.Equal(t, internalError, getErrorType(Info([]string{testFile("calls.ll")})))
}
