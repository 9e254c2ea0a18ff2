// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"os"
	"sort"
)

// Envvar is an environment variable the program reads, with its default value.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var envvars = make(map[string]Envvar)

// RegEnv registers an environment variable with a default value and a description
// shown in the help message.
func RegEnv(name, defv, desc string) {
	envvars[name] = Envvar{Name: name, Defv: defv, Desc: desc}
}

// GetEnv returns the value of a registered environment variable, or its default if
// it is not set. Unregistered variables read as "".
func GetEnv(name string) string {
	ev, ok := envvars[name]
	if !ok {
		return ""
	}
	if val, has := os.LookupEnv(name); has {
		return val
	}
	return ev.Defv
}

// GetEnvvars lists the registered environment variables sorted by name.
func GetEnvvars() []Envvar {
	var evs []Envvar
	for _, ev := range envvars {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i].Name < evs[j].Name })
	return evs
}
