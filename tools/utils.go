// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools contains file helpers, the registry of environment variables and the
// configuration file loader shared by the irkit commands.
package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"irkit/logger"
)

const fileMode = 0600

// MockFileExistsErr is a mock error returned by FileExists in tests
var MockFileExistsErr error

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if MockFileExistsErr != nil {
		return MockFileExistsErr
	}
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

// FilesExist returns the error of the first file that does not exist, or nil.
func FilesExist(fns []string) error {
	for _, fn := range fns {
		if err := FileExists(fn); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes a file.
func Remove(fn string) error {
	logger.Debugf("Remove file '%s'", fn)
	return os.Remove(fn)
}

// Dump writes the textual form of m to a file.
func Dump(m fmt.Stringer, fn string) error {
	logger.Debugf("Dump file '%s'", fn)
	out, err := os.OpenFile(fn,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()
	_, err = fmt.Fprint(out, m)
	return err
}

var reExt = regexp.MustCompile(`\.[^./\\]*$`)

// ReplaceExt swaps the extension of fn for ext (".bc", ".ll"), appending it if fn has
// none.
func ReplaceExt(fn, ext string) string {
	dir, base := filepath.Split(fn)
	if reExt.MatchString(base) {
		base = reExt.ReplaceAllString(base, "")
	}
	return filepath.Join(dir, base+ext)
}
