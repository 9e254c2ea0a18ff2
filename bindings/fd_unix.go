// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package bindings

import (
	"bufio"
	"io"

	"golang.org/x/sys/unix"
)

type fdWriter int

func (w fdWriter) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		k, err := unix.Write(int(w), p[n:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return n, err
		}
		if k == 0 {
			return n, io.ErrShortWrite
		}
		n += k
	}
	return n, nil
}

func writeFD(fd int, data []byte, unbuffered bool) error {
	if fd < 0 {
		return unix.EBADF
	}
	if unbuffered {
		_, err := fdWriter(fd).Write(data)
		return err
	}
	w := bufio.NewWriter(fdWriter(fd))
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func closeFD(fd int) error {
	return unix.Close(fd)
}
