// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"os"

	"fortio.org/safecast"

	"irkit/bindings"
	"irkit/logger"
)

// Target is where WriteBitcode sends the encoded module. The set is closed:
// PathTarget, DescriptorTarget, and whatever FileTarget resolves to.
type Target interface {
	writeBitcode(bindings.ModuleRef) int
}

// PathTarget writes to the file at a path, creating or truncating it.
type PathTarget string

func (p PathTarget) writeBitcode(ref bindings.ModuleRef) int {
	return bindings.WriteBitcodeToFile(ref, string(p))
}

// DescriptorTarget writes to an open file descriptor, which stays open.
type DescriptorTarget int

// Flags passed along with a descriptor: keep it open, write unbuffered.
const (
	fdShouldClose = 0
	fdUnbuffered  = 1
)

func (d DescriptorTarget) writeBitcode(ref bindings.ModuleRef) int {
	return bindings.WriteBitcodeToFD(ref, int(d), fdShouldClose, fdUnbuffered)
}

// FileTarget picks the target for an open file. Its path comes first: when f.Name()
// names the file f refers to, the module is written through the path. Otherwise, as
// for pipes and standard streams, it goes through the descriptor.
func FileTarget(f *os.File) Target {
	if p := f.Name(); p != "" {
		if fi, err := f.Stat(); err == nil {
			if pi, err := os.Stat(p); err == nil && os.SameFile(fi, pi) {
				return PathTarget(p)
			}
		}
	}
	fd, err := safecast.Conv[int](uint64(f.Fd()))
	if err != nil {
		logger.Warnf("descriptor of '%s' out of range: %v", f.Name(), err)
		return DescriptorTarget(-1)
	}
	return DescriptorTarget(fd)
}

// WriteBitcode encodes m to t and reports whether the backend succeeded.
func (m *Module) WriteBitcode(t Target) bool {
	return t.writeBitcode(m.ref) == 0
}

// WriteBitcodeToBuffer encodes m into a new memory buffer, or returns nil on failure.
// The caller disposes the buffer with bindings.DisposeMemoryBuffer.
func (m *Module) WriteBitcodeToBuffer() *bindings.MemoryBuffer {
	return bindings.WriteBitcodeToMemoryBuffer(m.ref)
}

// Bitcode returns the encoded module, or nil on failure.
func (m *Module) Bitcode() []byte {
	buf := m.WriteBitcodeToBuffer()
	if buf == nil {
		return nil
	}
	defer bindings.DisposeMemoryBuffer(buf)
	return append([]byte(nil), bindings.GetBufferStart(buf)...)
}
