// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"irkit/module"
)

// IsArgsn ensures there are 1 or more arguments
func IsArgsn(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no input file specified")
	}
	return nil
}

var (
	reIsLL = regexp.MustCompile(`(.*)\.ll$`)
	reIsBC = regexp.MustCompile(`(.*)\.bc$`)
)

func isLL(fn string) bool {
	return reIsLL.MatchString(fn)
}

func isBC(fn string) bool {
	return reIsBC.MatchString(fn)
}

// loadConfig returns the load options from the configuration file with the command
// line overrides applied.
func loadConfig() module.Config {
	cfg := config.Load
	if loadFlags.target != "" {
		cfg.Target = loadFlags.target
	}
	if loadFlags.noVerify {
		cfg.Verify = false
	}
	return cfg
}

var loadFlags struct {
	target   string
	noVerify bool
}

func addLoadFlags(flags *pflag.FlagSet) {
	flags.StringVar(&loadFlags.target, "target", "", "override the target triple of loaded modules")
	flags.BoolVar(&loadFlags.noVerify, "no-verify", false, "do not verify modules after loading")
}
