// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"irkit/module"
)

type errorType int

//go:generate go run golang.org/x/tools/cmd/stringer -type=errorType
const (
	noError errorType = iota
	internalError
	parseError
	checkFail
)

type vError struct {
	typ errorType
	err error
}

func (e *vError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *vError) Unwrap() error {
	return e.err
}

// Code is the exit status: 2 when a check failed (broken module, modules differ),
// 1 for any other error.
func (e *vError) Code() int {
	switch e.typ {
	case noError:
		return 0
	case checkFail:
		return 2
	default:
		return 1
	}
}

func verror(typ errorType, err error) *vError {
	return &vError{
		typ: typ,
		err: err,
	}
}

// vfail reports a failed check whose details were already printed.
func vfail() *vError {
	return &vError{typ: checkFail}
}

// loadError classifies an error returned by module.Load.
func loadError(err error) *vError {
	var (
		perr *module.ParseError
		verr *module.VerificationError
	)
	switch {
	case errors.As(err, &perr):
		return verror(parseError, err)
	case errors.As(err, &verr):
		return verror(checkFail, err)
	default:
		return verror(internalError, err)
	}
}

func getErrorType(err error) errorType {
	if err == nil {
		return noError
	}
	var e *vError
	if errors.As(err, &e) {
		return e.typ
	}
	return internalError
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var e *vError
	if errors.As(err, &e) {
		return e.Code()
	}
	return 1
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
