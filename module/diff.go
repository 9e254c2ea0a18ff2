// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"sort"

	"github.com/fatih/color"

	"irkit/logger"
)

var (
	addColor    = color.New(color.FgGreen).SprintFunc()
	removeColor = color.New(color.FgRed).SprintFunc()
	changeColor = color.New(color.FgYellow).SprintFunc()
)

// DiffKind tells how an entity differs between two modules.
type DiffKind int

const (
	// Added entities exist only in the second module.
	Added DiffKind = iota
	// Removed entities exist only in the first module.
	Removed
	// Changed entities exist in both with different types.
	Changed
)

func (k DiffKind) String() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}

// DiffEntry is one difference between two modules.
type DiffEntry struct {
	Kind   DiffKind
	Global bool // a global variable rather than a function
	Name   string
	Before string // type in the first module
	After  string // type in the second module
}

// Diff compares the functions and globals of m and o by name. Entries are sorted by
// kind of entity, then name.
func (m *Module) Diff(o *Module) []DiffEntry {
	a, b := m.Summarize(), o.Summarize()
	diff := diffEntities(a.Functions, b.Functions, false)
	return append(diff, diffEntities(a.Globals, b.Globals, true)...)
}

func diffEntities(before, after []EntitySummary, global bool) []DiffEntry {
	types := make(map[string]string, len(before))
	for _, e := range before {
		types[e.Name] = e.Type
	}

	var diff []DiffEntry
	seen := make(map[string]bool, len(after))
	for _, e := range after {
		seen[e.Name] = true
		t, ok := types[e.Name]
		switch {
		case !ok:
			diff = append(diff, DiffEntry{Kind: Added, Global: global, Name: e.Name, After: e.Type})
		case t != e.Type:
			diff = append(diff, DiffEntry{Kind: Changed, Global: global, Name: e.Name, Before: t, After: e.Type})
		}
	}
	for _, e := range before {
		if !seen[e.Name] {
			diff = append(diff, DiffEntry{Kind: Removed, Global: global, Name: e.Name, Before: e.Type})
		}
	}
	sort.SliceStable(diff, func(i, j int) bool {
		return diff[i].Name < diff[j].Name
	})
	return diff
}

// PrintDiff displays the differences between m and o and returns how many there are.
func (m *Module) PrintDiff(o *Module) int {
	diff := m.Diff(o)
	if len(diff) == 0 {
		return 0
	}

	logger.Println("== DIFF ======================================")
	logger.Println()
	for _, d := range diff {
		kind := "func  "
		if d.Global {
			kind = "global"
		}
		switch d.Kind {
		case Added:
			logger.Printf("%s %s @%s %s\n", addColor(d.Kind), kind, d.Name, d.After)
		case Removed:
			logger.Printf("%s %s @%s %s\n", removeColor(d.Kind), kind, d.Name, d.Before)
		default:
			logger.Printf("%s %s @%s %s --> %s\n", changeColor(d.Kind), kind, d.Name,
				d.Before, changeColor(d.After))
		}
	}
	logger.Println()
	return len(diff)
}
