// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "splatctl",
		Short: "Splatfolio operator tool",
		Long: "splatctl manages a Splatfolio deployment.\n\n" +
			"Point cloud files are sequences of 24-byte records (six little-endian\n" +
			"float32 values). The inspect, align and verify commands work on that\n" +
			"record layout.",
		SilenceUsage: true,
	}

	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newAlignCmd())
	root.AddCommand(newVerifyCmd())
	return root
}
