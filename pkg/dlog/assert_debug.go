// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tiereddebug

package dlog

import "fmt"

// assertImpl panics with the formatted message when cond is false. Only
// compiled into binaries built with -tags tiereddebug; release builds use
// the no-op in assert_release.go instead.
func assertImpl(cond bool, format string, v ...interface{}) {
	if !cond {
		Errorf(format, v...)
		panic(fmt.Sprintf(format, v...))
	}
}
