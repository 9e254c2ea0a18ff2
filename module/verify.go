// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"strings"

	"irkit/bindings"
	"irkit/logger"
)

// Verify checks m and returns nil if it is well formed, otherwise a
// *VerificationError with the diagnostic.
func (m *Module) Verify() error {
	if msg, broken := m.verify(bindings.ReturnStatusAction); broken {
		return &VerificationError{Module: m.Identifier(), Msg: msg}
	}
	return nil
}

// MustVerify checks m and aborts the process if it is broken. Use it only where a
// broken module must stop everything; Verify reports the problem instead.
func (m *Module) MustVerify() {
	m.verify(bindings.AbortProcessAction)
}

func (m *Module) verify(action bindings.VerifierFailureAction) (string, bool) {
	status, msg := bindings.VerifyModule(m.ref, action)
	defer bindings.DisposeMessage(msg)

	text := strings.TrimRight(msg.String(), "\n")
	logger.Debugf("verify '%s' (%v): status %d", m.Identifier(), action, status)
	return text, status == 1
}
