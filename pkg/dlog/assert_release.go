// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of tiercore.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !tiereddebug

package dlog

// assertImpl is a no-op in release builds. Callers must not rely on Assert
// for anything load-bearing; it exists purely to catch internal invariant
// violations during development.
func assertImpl(cond bool, format string, v ...interface{}) {}
