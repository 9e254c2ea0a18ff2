// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"irkit/logger"
)

// Summary is the container-level description of a module.
type Summary struct {
	Identifier string
	Target     string
	DataLayout string
	Functions  []EntitySummary
	Globals    []EntitySummary
}

// EntitySummary describes one function or global.
type EntitySummary struct {
	Name        string
	Type        string
	Declaration bool
}

// Summarize walks both collections of m.
func (m *Module) Summarize() Summary {
	s := Summary{
		Identifier: m.Identifier(),
		Target:     m.Target(),
		DataLayout: m.DataLayout(),
	}
	for f := range m.Functions().All() {
		s.Functions = append(s.Functions, EntitySummary{
			Name:        f.Name(),
			Type:        f.Type().LLString(),
			Declaration: f.IsDeclaration(),
		})
	}
	for g := range m.Globals().All() {
		s.Globals = append(s.Globals, EntitySummary{
			Name:        g.Name(),
			Type:        g.ContentType().LLString(),
			Declaration: g.Initializer() == nil,
		})
	}
	return s
}

// PrintSummary displays at standard output a summary of the module.
func (m *Module) PrintSummary() {
	s := m.Summarize()
	logger.Println("== SUMMARY ===================================")
	logger.Println()
	logger.Println("Module")
	logger.Printf("  %s\n", s.Identifier)
	if s.Target != "" {
		logger.Printf("  target      : %s\n", s.Target)
	}
	if s.DataLayout != "" {
		logger.Printf("  data layout : %s\n", s.DataLayout)
	}
	logger.Println()
	printEntities("Functions", "declare", "define", s.Functions)
	printEntities("Globals", "external", "defined", s.Globals)
}

func printEntities(title, decl, def string, es []EntitySummary) {
	logger.Printf("%s (%d)\n", title, len(es))
	width := 0
	for _, e := range es {
		if w := runewidth.StringWidth(e.Name); w > width {
			width = w
		}
	}
	for i, e := range es {
		kind := def
		if e.Declaration {
			kind = decl
		}
		logger.Printf("  [%d] %-8s %s  %s\n", i+1, kind,
			runewidth.FillRight(e.Name, width), e.Type)
	}
	logger.Println()
}

// PrintReachable displays the functions reachable from entry and the defined
// functions that are not.
func (m *Module) PrintReachable(entry []string) error {
	reach, err := m.Reachable(entry...)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(reach))
	for _, name := range reach {
		seen[name] = true
	}
	var dead []string
	for f := range m.Functions().All() {
		if !seen[f.Name()] && !f.IsDeclaration() {
			dead = append(dead, f.Name())
		}
	}

	logger.Println("== REACHABLE =================================")
	logger.Println()
	logger.Printf("From %v (%d)\n", entry, len(reach))
	for _, name := range reach {
		logger.Printf("  %s\n", name)
	}
	logger.Println()
	logger.Printf("Unreachable (%d)\n", len(dead))
	for _, name := range dead {
		logger.Printf("  %s\n", name)
	}
	logger.Println()
	return nil
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: %d functions, %d globals", s.Identifier, len(s.Functions), len(s.Globals))
}
