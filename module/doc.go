// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package module provides a container for IR modules (backed by package bindings and
// github.com/llir). A Module owns its functions and global variables, enumerates and
// looks them up through lazily created collections, and verifies, prints and
// serializes itself.
//
// Modules, their collections and the Function and GlobalValue wrappers they hand out
// are not safe for concurrent use. The backend is not synchronized, so a module must be
// used by one goroutine at a time, and callers must serialize additions and deletions
// against any ongoing traversal. Distinct modules in distinct contexts may be used from
// different goroutines.
package module
