// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irkit/logger"
	"irkit/tools"
)

var testsDir = "../../tests"

func testFile(fn string) string {
	if val := os.Getenv("TESTS_DIR"); val != "" { //permit:os.Getenv
		testsDir = val
	}
	return filepath.Join(testsDir, fn)
}

// copyTest copies a file of the tests directory into a temporary directory, so that
// commands writing next to their input leave the tests directory alone.
func copyTest(t *testing.T, fn string) string {
	t.Helper()
	data, err := os.ReadFile(testFile(fn))
	require.Nil(t, err)
	out := filepath.Join(t.TempDir(), fn)
	require.Nil(t, os.WriteFile(out, data, 0600))
	return out
}

// captureLog sends the logger output to a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	color.NoColor = true
	level := logger.GetLevel()
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetLevel(level)
		logger.SetFileDescriptor(os.Stdout)
	})
	return &buf
}

func TestSetup(t *testing.T) {
	captureLog(t)
	fn := filepath.Join(t.TempDir(), "irkit.toml")
	require.Nil(t, os.WriteFile(fn, []byte("log = \"WARN\"\njobs = 1\n[load]\nverify = false\n"), 0600))

	prev := rootFlags
	defer func() {
		rootFlags = prev
		config = tools.DefaultConfig()
	}()

	rootFlags.config = fn
	require.Nil(t, setup())
	assert.Equal(t, 1, config.Jobs)
	assert.False(t, config.Load.Verify)
	assert.Equal(t, logger.WARN, logger.GetLevel())

	t.Setenv("IRKIT_LOG", "INFO")
	require.Nil(t, setup())
	assert.Equal(t, logger.INFO, logger.GetLevel())

	rootFlags.log = "DEBUG"
	require.Nil(t, setup())
	assert.Equal(t, logger.DEBUG, logger.GetLevel())

	rootFlags.log = "LOUD"
	assert.Equal(t, internalError, getErrorType(setup()))

	rootFlags.log = ""
	rootFlags.config = filepath.Join(t.TempDir(), "missing.toml")
	assert.Equal(t, internalError, getErrorType(setup()))
}

func TestExecute(t *testing.T) {
	buf := captureLog(t)
	defer func() { config = tools.DefaultConfig() }()

	rootCmd.SetArgs([]string{"info", testFile("hello.ll")})
	require.Nil(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "== SUMMARY")

	rootCmd.SetArgs([]string{"version"})
	require.Nil(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "irkit latest (bitcode IRKB)")

	rootCmd.SetArgs([]string{"info"})
	assert.NotNil(t, rootCmd.Execute())
}

func TestLoadFlags(t *testing.T) {
	prev := loadFlags
	defer func() { loadFlags = prev }()

	cfg := loadConfig()
	assert.Equal(t, config.Load, cfg)

	loadFlags.target = "aarch64-unknown-linux-gnu"
	loadFlags.noVerify = true
	cfg = loadConfig()
	assert.Equal(t, "aarch64-unknown-linux-gnu", cfg.Target)
	assert.False(t, cfg.Verify)
}
