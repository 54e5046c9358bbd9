// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dlog provides the leveled logging used internally
// by the tiered containers for debug tracing and invariant assertions.
//
// It is deliberately not a general-purpose logging facade: callers that embed
// this module in a bigger application are expected to point the level
// writers at their own sinks (see SetOutput) rather than depend on dlog
// directly. Time/date are omitted by default since most deployments already
// get them from systemd or a surrounding log pipeline.
package dlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]    "
	WarnPrefix  string = "<4>[WARNING]  "
	ErrPrefix   string = "<3>[ERROR]    "
)

var (
	DebugLog *log.Logger = log.New(DebugWriter, DebugPrefix, 0)
	WarnLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.Lshortfile)
	ErrLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.Llongfile)
)

// SetOutput redirects all three level writers to w. Used by host applications
// that want dlog's tracing folded into their own log stream.
func SetOutput(w io.Writer) {
	DebugWriter, WarnWriter, ErrWriter = w, w, w
	DebugLog = log.New(w, DebugPrefix, 0)
	WarnLog = log.New(w, WarnPrefix, log.Lshortfile)
	ErrLog = log.New(w, ErrPrefix, log.Llongfile)
}

func Debug(v ...interface{}) {
	if DebugWriter != io.Discard {
		DebugLog.Output(2, fmt.Sprint(v...))
	}
}

func Debugf(format string, v ...interface{}) {
	if DebugWriter != io.Discard {
		DebugLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(v ...interface{}) {
	if WarnWriter != io.Discard {
		WarnLog.Output(2, fmt.Sprint(v...))
	}
}

func Warnf(format string, v ...interface{}) {
	if WarnWriter != io.Discard {
		WarnLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Error(v ...interface{}) {
	if ErrWriter != io.Discard {
		ErrLog.Output(2, fmt.Sprint(v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if ErrWriter != io.Discard {
		ErrLog.Output(2, fmt.Sprintf(format, v...))
	}
}

// Assertions are compiled out unless the module is built with the `tiereddebug`
// build tag (see assert_debug.go / assert_release.go). Release builds still
// bounds-check slot ids, level indices and width-tier limits explicitly at
// each call site; Assert exists only to catch internal invariant violations
// during development.
func Assert(cond bool, format string, v ...interface{}) {
	assertImpl(cond, format, v...)
}
