// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command splatctl is the operator tool for a Splatfolio deployment: it
// hashes admin passwords and inspects, repairs and audits stored point
// cloud files.
//
//	splatctl hash-password < password.txt
//	splatctl inspect static/models/scene.splat
//	splatctl align static/models/scene.splat
//	splatctl verify static/models
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
