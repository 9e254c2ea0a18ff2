// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

// Config enables multiple options when loading a module.
type Config struct {
	Verify     bool     `toml:"verify"`      // whether Load rejects broken modules
	Target     string   `toml:"target"`      // target triple overriding the file's, if set
	DataLayout string   `toml:"data_layout"` // data layout overriding the file's, if set
	Context    *Context `toml:"-"`           // context owning loaded modules, global if nil
}

// DefaultConfig returns a default configuration for loading a module
func DefaultConfig() Config {
	return Config{
		Verify: true,
	}
}
