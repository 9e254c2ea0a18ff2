// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build tools
// +build tools

// Pins the versions of the linters and generators run by go generate and CI.
package tools

import (
	_ "github.com/ashanbrown/forbidigo"
	_ "golang.org/x/tools/cmd/stringer"
)
