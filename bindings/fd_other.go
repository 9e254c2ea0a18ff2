// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package bindings

import "errors"

var errNoFD = errors.New("raw descriptor writes are not supported on this platform")

func writeFD(int, []byte, bool) error {
	return errNoFD
}

func closeFD(int) error {
	return errNoFD
}
