// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bindings is the IR backend used by package module. It owns contexts, modules,
// functions and globals (backed by github.com/llir/llvm), their name tables, the
// verifier and the bitcode encoder/decoder.
//
// The API is shaped like a C binding: free functions over small handle structs. A
// handle is a comparable value wrapping a pointer; its zero value is the null handle,
// which the lookup and traversal functions return for "not found" and "end of
// sequence". Handles do not own anything. Memory handed out by the backend
// (diagnostic messages, memory buffers) must be released by the caller with the
// matching Dispose function.
//
// Apart from creating the global context and counting messages, nothing in this
// package is synchronized. A context, its modules and their values must be used by
// one goroutine at a time.
package bindings
