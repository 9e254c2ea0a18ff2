// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"regexp"

	"irkit/bindings"
	"irkit/logger"
)

var reLL = regexp.MustCompile(`\.ll$`)

// Load reads the module in fn, either LLVM assembly (.ll) or bitcode, and applies cfg.
// Files without the .ll extension are sniffed: bitcode is recognised by its
// signature, anything else is parsed as assembly.
func Load(fn string, cfg Config) (*Module, error) {
	logger.Infof("Parse '%s'", fn)

	buf, msg, status := bindings.CreateMemoryBufferWithContentsOfFile(fn)
	if status != 0 {
		defer bindings.DisposeMessage(msg)
		return nil, &ParseError{Source: fn, Msg: msg.String()}
	}
	defer bindings.DisposeMemoryBuffer(buf)

	parser := bindings.ParseIRInContext
	if !reLL.MatchString(fn) && bindings.IsBitcode(bindings.GetBufferStart(buf)) {
		logger.Debugf("'%s' is bitcode", fn)
		parser = bindings.ParseBitcodeInContext
	}
	m, err := parse(cfg.Context, buf, parser)
	if err != nil {
		return nil, err
	}

	if cfg.Target != "" {
		m.SetTarget(cfg.Target)
	}
	if cfg.DataLayout != "" {
		m.SetDataLayout(cfg.DataLayout)
	}
	if cfg.Verify {
		logger.Infof("Verify '%s'", fn)
		if err := m.Verify(); err != nil {
			m.Dispose()
			return nil, err
		}
	}
	return m, nil
}
