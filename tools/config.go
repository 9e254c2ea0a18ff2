// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/jinzhu/copier"

	"irkit/logger"
	"irkit/module"
)

func init() {
	RegEnv("IRKIT_CONFIG", "irkit.toml", "Configuration file read by every command")
}

// Config is the content of an irkit configuration file.
//
//	log = "INFO"
//	jobs = 4
//
//	[load]
//	verify = true
//	target = "x86_64-unknown-linux-gnu"
type Config struct {
	Log  string        `toml:"log"`  // log level, see logger.ParseLevel
	Jobs int           `toml:"jobs"` // files processed concurrently
	Load module.Config `toml:"load"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Log:  "ERROR",
		Jobs: 4,
		Load: module.DefaultConfig(),
	}
}

// LoadConfig reads the configuration file fn over the defaults. Values absent from
// the file keep their default. A missing file yields the defaults unless required is
// set.
func LoadConfig(fn string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if fn == "" {
		return cfg, nil
	}

	var file Config
	meta, err := toml.DecodeFile(fn, &file)
	if errors.Is(err, os.ErrNotExist) && !required {
		logger.Debugf("no configuration file '%s'", fn)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", fn, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		logger.Warnf("%s: unknown configuration keys %v", fn, keys)
	}

	verify := cfg.Load.Verify
	if err := copier.CopyWithOption(&cfg, &file, copier.Option{IgnoreEmpty: true}); err != nil {
		return cfg, fmt.Errorf("%s: %w", fn, err)
	}
	// booleans only count when present in the file, "verify = false" included
	cfg.Load.Verify = verify
	if meta.IsDefined("load", "verify") {
		cfg.Load.Verify = file.Load.Verify
	}
	logger.Debugf("configuration from '%s': %+v", fn, cfg)
	return cfg, nil
}
