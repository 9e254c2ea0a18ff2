// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import "fmt"

// ParseError reports a module that could not be read. Msg is the backend diagnostic.
type ParseError struct {
	Source string
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse error: %s", e.Msg)
	}
	return fmt.Sprintf("parse error in '%s': %s", e.Source, e.Msg)
}

// VerificationError reports a structurally invalid module. Msg is the backend
// diagnostic, one problem per line.
type VerificationError struct {
	Module string
	Msg    string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("module '%s' is broken: %s", e.Module, e.Msg)
}
