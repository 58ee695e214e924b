// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/splatfolio/internal/splat"
)

// errMisalignedFiles makes verify exit non-zero.
var errMisalignedFiles = errors.New("misaligned files found")

type verifyResult struct {
	Checked    int
	Misaligned []*splat.MisalignedError
}

// verifyDir checks every regular file under dir. Hidden files, including
// in-progress uploads, are skipped.
func verifyDir(dir string) (verifyResult, error) {
	var res verifyResult
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		res.Checked++
		_, err = splat.ValidateStoredAsset(path)
		var me *splat.MisalignedError
		switch {
		case errors.As(err, &me):
			res.Misaligned = append(res.Misaligned, me)
			return nil
		default:
			return err
		}
	})
	return res, err
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dir>",
		Short: "Report point cloud files that are not a whole number of records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := verifyDir(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, me := range res.Misaligned {
				fmt.Fprintf(out, "MISALIGNED %s: %d bytes, %d trailing\n",
					me.Path, me.FileSize, me.FileSize-me.ExpectedSize)
			}
			fmt.Fprintf(out, "%d files checked, %d misaligned\n", res.Checked, len(res.Misaligned))

			if len(res.Misaligned) > 0 {
				return fmt.Errorf("%w: %d", errMisalignedFiles, len(res.Misaligned))
			}
			return nil
		},
	}
}
