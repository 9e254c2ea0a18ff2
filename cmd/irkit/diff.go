// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"irkit/logger"
	"irkit/module"
)

func init() {
	var diffCmd = cobra.Command{
		Use:   "diff <a.ll|a.bc> <b.ll|b.bc>",
		Short: "Compares the functions and globals of two modules.",
		Args:  cobra.ExactArgs(2),

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Diff(args[0], args[1])
		},
	}

	rootCmd.AddCommand(&diffCmd)
}

// Diff prints the differences between the modules in a and b. It fails with checkFail
// if they differ.
func Diff(a, b string) error {
	cfg := loadConfig()
	cfg.Verify = false

	ma, err := module.Load(a, cfg)
	if err != nil {
		return loadError(err)
	}
	defer ma.Dispose()

	mb, err := module.Load(b, cfg)
	if err != nil {
		return loadError(err)
	}
	defer mb.Dispose()

	if n := ma.PrintDiff(mb); n > 0 {
		logger.Printf("%d difference(s)\n", n)
		return vfail()
	}
	return nil
}
