// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"irkit/logger"
	"irkit/module"
)

var infoFlags struct {
	entry []string
}

func init() {
	var infoCmd = cobra.Command{
		Use:   "info <input.ll|input.bc>...",
		Short: "Prints information about the input file(s).",
		Args:  IsArgsn,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return Info(args)
		},
	}
	infoCmd.Flags().StringSliceVarP(&infoFlags.entry, "entry", "e", nil,
		"list the functions reachable from these entry functions")

	rootCmd.AddCommand(&infoCmd)
}

// Info loads every file and prints its summary.
func Info(fns []string) error {
	for _, fn := range fns {
		logger.Debugf("Info %s", fn)

		m, err := module.Load(fn, loadConfig())
		if err != nil {
			return loadError(err)
		}
		m.PrintSummary()
		if len(infoFlags.entry) > 0 {
			if err := m.PrintReachable(infoFlags.entry); err != nil {
				m.Dispose()
				return verror(internalError, err)
			}
		}
		m.Dispose()
	}
	return nil
}
