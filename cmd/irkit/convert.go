// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irkit/logger"
	"irkit/module"
	"irkit/tools"
)

var convertFlags struct {
	output string
}

func init() {
	var convertCmd = cobra.Command{
		Use:   "convert [flags] <input.ll|input.bc>",
		Short: "Converts between LLVM assembly and bitcode.",
		Long: "Converts between LLVM assembly and bitcode. The output format follows the\n" +
			"extension of the output file: .ll for assembly, anything else for bitcode.\n" +
			"Without -o, assembly input becomes <input>.bc and bitcode input <input>.ll.\n" +
			"With -o -, bitcode is written to the standard output.",
		Args: cobra.ExactArgs(1),

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Convert(args[0], convertFlags.output)
		},
	}
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file")

	rootCmd.AddCommand(&convertCmd)
}

// Convert reads fn and writes it to output in the format its extension asks for.
func Convert(fn, output string) error {
	if output == "" {
		if isLL(fn) {
			output = tools.ReplaceExt(fn, ".bc")
		} else {
			output = tools.ReplaceExt(fn, ".ll")
		}
	}
	if output == fn {
		return verror(internalError, fmt.Errorf("refusing to overwrite input '%s'", fn))
	}

	m, err := module.Load(fn, loadConfig())
	if err != nil {
		return loadError(err)
	}
	defer m.Dispose()

	logger.Infof("Write '%s'", output)
	switch {
	case output == "-":
		if !m.WriteBitcode(module.FileTarget(os.Stdout)) {
			return verror(internalError, fmt.Errorf("could not write bitcode to stdout"))
		}
	case isLL(output):
		if err := m.WriteAssembly(output); err != nil {
			return verror(internalError, err)
		}
	default:
		if !isBC(output) {
			logger.Warnf("'%s' has no .ll or .bc extension, writing bitcode", output)
		}
		if !m.WriteBitcode(module.PathTarget(output)) {
			return verror(internalError, fmt.Errorf("could not write bitcode to '%s'", output))
		}
	}
	return nil
}
