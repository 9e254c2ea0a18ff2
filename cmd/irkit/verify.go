// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"irkit/logger"
	"irkit/module"
)

var (
	okColor     = color.New(color.FgGreen).SprintFunc()
	brokenColor = color.New(color.FgRed, color.Bold).SprintFunc()
)

func init() {
	var verifyCmd = cobra.Command{
		Use:   "verify <input.ll|input.bc>...",
		Short: "Checks that the input modules are well formed.",
		Args:  IsArgsn,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Verify(cmd.Context(), args)
		},
	}

	rootCmd.AddCommand(&verifyCmd)
}

// verifyResult is the outcome for one file: err is a load error, broken the
// verifier diagnostic.
type verifyResult struct {
	err    error
	broken *module.VerificationError
}

// Verify loads and verifies the files concurrently, each in a context of its own, and
// reports them in order. It fails with checkFail if any module is broken.
func Verify(ctx context.Context, fns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]verifyResult, len(fns))

	g, ctx := errgroup.WithContext(ctx)
	if config.Jobs > 0 {
		g.SetLimit(config.Jobs)
	}
	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = verifyFile(fn)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return verror(internalError, err)
	}

	failed := false
	for i, fn := range fns {
		r := results[i]
		switch {
		case r.err != nil:
			return loadError(r.err)
		case r.broken != nil:
			failed = true
			logger.Printf("%s %s\n", brokenColor("BROKEN"), fn)
			logger.Println(r.broken.Msg)
		default:
			logger.Printf("%s     %s\n", okColor("OK"), fn)
		}
	}
	if failed {
		return vfail()
	}
	return nil
}

func verifyFile(fn string) verifyResult {
	mctx := module.NewContext()
	defer mctx.Dispose()

	cfg := loadConfig()
	cfg.Context = mctx
	cfg.Verify = false
	m, err := module.Load(fn, cfg)
	if err != nil {
		return verifyResult{err: err}
	}
	defer m.Dispose()

	var verr *module.VerificationError
	if err := m.Verify(); errors.As(err, &verr) {
		return verifyResult{broken: verr}
	}
	return verifyResult{}
}
