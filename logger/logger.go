// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logger implements a simple logger with a few error levels.
package logger

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level represents the amount of detail in which the log is output.
type Level int

const (
	fatal Level = iota
	// ERROR only log errors
	ERROR
	// WARN only log warnings and errors
	WARN
	// INFO log information, warnings and errors
	INFO
	// DEBUG log as much as possible
	DEBUG
)

var levelNames = map[string]Level{
	"ERROR": ERROR,
	"WARN":  WARN,
	"INFO":  INFO,
	"DEBUG": DEBUG,
}

// ParseLevel maps a level name (ERROR, WARN, INFO, DEBUG; any case) to its Level.
func ParseLevel(s string) (Level, error) {
	l, ok := levelNames[strings.ToUpper(s)]
	if !ok {
		return ERROR, fmt.Errorf("unknown log level '%s'", s)
	}
	return l, nil
}

func (l Level) String() string {
	for name, v := range levelNames {
		if v == l {
			return name
		}
	}
	return "FATAL"
}

var (
	// mu serializes writes of concurrent commands
	mu     sync.Mutex
	logger *bufio.Writer
	level  = ERROR

	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	debugColor = color.New(color.FgHiBlack)
)

func errorTag() string { return errorColor.Sprint("error:") }
func warnTag() string  { return warnColor.Sprint("warning:") }
func debugTag() string { return debugColor.Sprint("debug:") }

func init() {
	logger = bufio.NewWriter(os.Stdout)
}

// SetFileDescriptor sets the file descriptor to which the output is sent.
// If fd is nil, no output is shown.
func SetFileDescriptor(fd *os.File) {
	if fd == nil {
		mu.Lock()
		logger = nil
		mu.Unlock()
		return
	}
	SetOutput(fd)
}

// SetOutput sends the output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = bufio.NewWriter(w)
}

// SetLevel reconfigures the error level of the logger.
func SetLevel(l Level) {
	level = l
}

// GetLevel returns the current error level.
func GetLevel() Level {
	return level
}

// Fatal works as Error, but aborts the program.
func Fatal(args ...any) {
	if logger != nil {
		Println(append([]any{errorTag()}, args...)...)
	}
	fail()
}

// Fatalf works as Errorf, but aborts the program.
func Fatalf(format string, args ...any) {
	if logger != nil {
		Printf("%s %s\n", errorTag(), fstr(format, args...))
	}
	fail()
}

// Error works as fmt.Print, but it adds a newline at the end of the format string.
func Error(args ...any) {
	if logger == nil || level < ERROR {
		return
	}
	Println(append([]any{errorTag()}, args...)...)
}

// Errorf works as fmt.Printf, but it adds a newline at the end of the format string.
func Errorf(format string, args ...any) {
	if logger == nil || level < ERROR {
		return
	}
	Printf("%s %s\n", errorTag(), fstr(format, args...))
}

// Warn works as fmt.Print when error level is WARN. It adds a newline at the end of the format string.
func Warn(args ...any) {
	if logger == nil || level < WARN {
		return
	}
	Println(append([]any{warnTag()}, args...)...)
}

// Warnf works as fmt.Printf when error level is WARN. It adds a newline at the end of the format string.
func Warnf(format string, args ...any) {
	if logger == nil || level < WARN {
		return
	}
	Printf("%s %s\n", warnTag(), fstr(format, args...))
}

// Info works as fmt.Print when error level is INFO. It adds a newline at the end of the format string.
func Info(args ...any) {
	if logger == nil || level < INFO {
		return
	}
	Println(args...)
}

// Infof works as fmt.Printf when error level is INFO. It adds a newline at the end of the format string.
func Infof(format string, args ...any) {
	if logger == nil || level < INFO {
		return
	}
	Printf("%s\n", fstr(format, args...))
}

// Debug works as fmt.Print when error level is DEBUG. It adds a newline at the end of the format string.
func Debug(args ...any) {
	if logger == nil || level < DEBUG {
		return
	}
	Println(append([]any{debugTag()}, args...)...)
}

// Debugf works as fmt.Printf when error level is DEBUG. It adds a newline at the end of the format string.
func Debugf(format string, args ...any) {
	if logger == nil || level < DEBUG {
		return
	}
	Printf("%s %s\n", debugTag(), fstr(format, args...))
}

// Print works as fmt.Print, but flushes the file descriptor.
func Print(args ...any) {
	if logger == nil {
		return
	}
	fprint(args...)
}

// Println works as fmt.Println, but flushes the file descriptor.
func Println(args ...any) {
	if logger == nil {
		return
	}
	fprintln(args...)
}

// Printf works as fmt.Printf, but flushes the file descriptor.
func Printf(format string, args ...any) {
	if logger == nil {
		return
	}
	fprintf(format, args...)
}

var fstr = fmt.Sprintf

func fprint(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	if _, err := fmt.Fprint(logger, args...); err != nil {
		fail()
	}
	flush()
}

func fprintln(args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	if _, err := fmt.Fprintln(logger, args...); err != nil {
		fail()
	}
	flush()
}

func fprintf(format string, args ...any) {
	fprint(fstr(format, args...))
}

func flush() {
	if logger.Flush() != nil {
		fail()
	}
}

func fail() {
	// use fatal instead of panic to make linter happy
	log.Fatal()
}
