// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the irkit program: it inspects, verifies, converts and compares IR
// modules.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"irkit/bindings"
	"irkit/logger"
	"irkit/tools"
)

var rootCmd = cobra.Command{
	Use:           "irkit",
	Short:         "",
	Long:          "",
	SilenceUsage:  true,
	SilenceErrors: true,

	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("run 'irkit -h' for help")
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	tools.RegEnv("IRKIT_LOG", "", "Log level used when --log is not given (ERROR|WARN|INFO|DEBUG)")

	helpMessage :=
		`irkit -- Inspect, verify and convert IR modules`

	helpMessage += "\n\nEnvironment Variables:"
	for _, ev := range tools.GetEnvvars() {
		helpMessage += "\n  " + ev.Name + " " +
			"(default: \"" + ev.Defv + "\")\n\t" + ev.Desc
	}
	rootCmd.Long = helpMessage

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.log, "log", "", "log level (ERROR|WARN|INFO|DEBUG)")
	flags.StringVar(&rootFlags.config, "config", tools.GetEnv("IRKIT_CONFIG"), "configuration file")
	flags.BoolVarP(&rootFlags.debug, "debug", "d", false, "set debug mode")
	flags.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "do not produce output")
	flags.BoolVar(&rootFlags.noColor, "no-color", false, "disable colored output")
	addLoadFlags(flags)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

var rootFlags struct {
	log     string
	config  string
	debug   bool
	quiet   bool
	noColor bool
}

// config is the configuration in effect, filled by setup.
var config = tools.DefaultConfig()

func setup() error {
	cfg, err := tools.LoadConfig(rootFlags.config, rootFlags.config != tools.GetEnv("IRKIT_CONFIG"))
	if err != nil {
		return verror(internalError, err)
	}
	config = cfg

	lvl := config.Log
	if env := tools.GetEnv("IRKIT_LOG"); env != "" {
		lvl = env
	}
	if rootFlags.log != "" {
		lvl = rootFlags.log
	}
	l, err := logger.ParseLevel(lvl)
	if err != nil {
		return verror(internalError, err)
	}
	logger.SetLevel(l)
	if rootFlags.debug {
		logger.SetLevel(logger.DEBUG)
	}
	if rootFlags.quiet {
		logger.SetFileDescriptor(nil)
	}
	if rootFlags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	return nil
}

// handlePanic turns the backend's invalid-handle panics into an error exit. Any
// other panic is a bug and propagates.
func handlePanic() {
	e := recover()
	if e == nil {
		return
	}
	err, ok := e.(error)
	if !ok || !errors.Is(err, bindings.ErrInvalidHandle) {
		panic(e)
	}
	logger.Errorf("panic: %v", err)
	os.Exit(getErrorCode(verror(internalError, err)))
}

func main() {
	if !rootFlags.debug {
		defer handlePanic()
	}
	if err := rootCmd.Execute(); err != nil {
		var (
			code = getErrorCode(err)
			msg  = getErrorMessage(err)
		)

		if msg != "" {
			logger.Errorf("%s", msg)
		}
		os.Exit(code)
	}
}
