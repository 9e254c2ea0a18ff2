// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"irkit/logger"
	"irkit/module"
	"irkit/tools"
)

var dumpFlags struct {
	output string
}

func init() {
	var dumpCmd = cobra.Command{
		Use:   "dump [flags] <input.ll|input.bc>",
		Short: "Prints the module in LLVM assembly.",
		Args:  cobra.ExactArgs(1),

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Dump(args[0], dumpFlags.output)
		},
	}
	dumpCmd.Flags().StringVarP(&dumpFlags.output, "output", "o", "", "output LLVM file")

	rootCmd.AddCommand(&dumpCmd)
}

// Dump prints the module in fn to the standard output, or to output if set.
func Dump(fn, output string) error {
	m, err := module.Load(fn, loadConfig())
	if err != nil {
		return loadError(err)
	}
	defer m.Dispose()

	if output == "" {
		logger.Print(m)
		return nil
	}
	if err := tools.Dump(m, output); err != nil {
		return verror(internalError, err)
	}
	return nil
}
