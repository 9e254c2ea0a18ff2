// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bindings

import (
	"bytes"
	"fmt"
	"os"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/vmihailenco/msgpack/v5"
)

// BitcodeMagic opens every encoded module.
const BitcodeMagic = "IRKB"

// bitcodeVersion is bumped when the envelope layout changes.
const bitcodeVersion uint16 = 1

// envelope is the on-disk form of a module: its identifier and its assembly text.
type envelope struct {
	Magic   string `msgpack:"magic"`
	Version uint16 `msgpack:"version"`
	Ident   string `msgpack:"ident"`
	Source  []byte `msgpack:"source"`
}

// MemoryBuffer is a named, read-only byte range handed to the parsers.
type MemoryBuffer struct {
	name     string
	data     []byte
	disposed bool
}

// CreateMemoryBufferWithMemoryRange copies data into a new buffer.
func CreateMemoryBufferWithMemoryRange(data []byte, name string) *MemoryBuffer {
	return &MemoryBuffer{name: name, data: append([]byte(nil), data...)}
}

// CreateMemoryBufferWithContentsOfFile reads path into a new buffer. It returns 0 on
// success, otherwise 1 and a message the caller must dispose.
func CreateMemoryBufferWithContentsOfFile(path string) (*MemoryBuffer, Message, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newMessage(err.Error()), 1
	}
	return &MemoryBuffer{name: path, data: data}, Message{}, 0
}

// DisposeMemoryBuffer releases b.
func DisposeMemoryBuffer(b *MemoryBuffer) {
	if b == nil {
		return
	}
	b.data = nil
	b.disposed = true
}

// GetBufferStart returns the contents of b. The slice must not be modified.
func GetBufferStart(b *MemoryBuffer) []byte {
	b.check()
	return b.data
}

// GetBufferSize returns the length of b.
func GetBufferSize(b *MemoryBuffer) int {
	b.check()
	return len(b.data)
}

// GetBufferName returns the name b was created with.
func GetBufferName(b *MemoryBuffer) string {
	b.check()
	return b.name
}

func (b *MemoryBuffer) check() {
	if b == nil || b.disposed {
		panic(ErrInvalidHandle)
	}
}

// IsBitcode reports whether data starts like an encoded module.
func IsBitcode(data []byte) bool {
	var env envelope
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&env); err != nil {
		return false
	}
	return env.Magic == BitcodeMagic
}

// ParseBitcode decodes buf into a new module of the global context.
func ParseBitcode(buf *MemoryBuffer) (ModuleRef, Message, int) {
	return ParseBitcodeInContext(GetGlobalContext(), buf)
}

// ParseBitcodeInContext decodes buf into a new module owned by c. It returns 0 and the
// module on success, otherwise 1 and a message the caller must dispose.
func ParseBitcodeInContext(c ContextRef, buf *MemoryBuffer) (ModuleRef, Message, int) {
	cd := c.live()
	buf.check()

	var env envelope
	if err := msgpack.Unmarshal(buf.data, &env); err != nil {
		return ModuleRef{}, newMessage(fmt.Sprintf("%s: invalid bitcode signature: %v", buf.name, err)), 1
	}
	if env.Magic != BitcodeMagic {
		return ModuleRef{}, newMessage(fmt.Sprintf("%s: invalid bitcode signature", buf.name)), 1
	}
	if env.Version > bitcodeVersion {
		return ModuleRef{}, newMessage(fmt.Sprintf("%s: unsupported bitcode version %d", buf.name, env.Version)), 1
	}
	m, err := disassemble(env.Ident, env.Source)
	if err != nil {
		return ModuleRef{}, newMessage(err.Error()), 1
	}
	return ModuleRef{m: newModuleData(cd, env.Ident, m)}, Message{}, 0
}

// ParseIRInContext parses the LLVM assembly held in buf into a new module owned by c.
// The buffer name becomes the module identifier.
func ParseIRInContext(c ContextRef, buf *MemoryBuffer) (ModuleRef, Message, int) {
	cd := c.live()
	buf.check()

	m, err := disassemble(buf.name, buf.data)
	if err != nil {
		return ModuleRef{}, newMessage(err.Error()), 1
	}
	return ModuleRef{m: newModuleData(cd, buf.name, m)}, Message{}, 0
}

// WriteBitcodeToFile encodes m into the file at path, creating or truncating it. It
// returns 0 on success.
func WriteBitcodeToFile(m ModuleRef, path string) int {
	data, err := encode(m.live())
	if err != nil {
		return 1
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return 1
	}
	return 0
}

// WriteBitcodeToFD encodes m into the open descriptor fd. The descriptor is closed
// afterwards when shouldClose is non-zero. With unbuffered zero the encoding is
// staged in a buffered writer first. It returns 0 on success.
func WriteBitcodeToFD(m ModuleRef, fd, shouldClose, unbuffered int) int {
	data, err := encode(m.live())
	if err != nil {
		return 1
	}
	status := 0
	if err := writeFD(fd, data, unbuffered != 0); err != nil {
		status = 1
	}
	if shouldClose != 0 {
		if err := closeFD(fd); err != nil {
			status = 1
		}
	}
	return status
}

// WriteBitcodeToMemoryBuffer encodes m into a new buffer, or returns nil if m cannot
// be encoded.
func WriteBitcodeToMemoryBuffer(m ModuleRef) *MemoryBuffer {
	md := m.live()
	data, err := encode(md)
	if err != nil {
		return nil
	}
	return &MemoryBuffer{name: md.ident, data: data}
}

const fileMode = 0600

func encode(md *moduleData) ([]byte, error) {
	src, err := assemble(md)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&envelope{
		Magic:   BitcodeMagic,
		Version: bitcodeVersion,
		Ident:   md.ident,
		Source:  src,
	})
}

func assemble(md *moduleData) ([]byte, error) {
	var buf bytes.Buffer
	if err := printModule(&buf, md); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func disassemble(ident string, src []byte) (*ir.Module, error) {
	m, err := asm.ParseBytes(ident, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ident, err)
	}
	return m, nil
}
