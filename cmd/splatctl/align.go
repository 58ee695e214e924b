// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/splatfolio/internal/splat"
)

// alignFile copies in to out truncated to whole records. out is written
// through a temp file in its own directory and renamed into place, so in
// and out may be the same path.
func alignFile(in, out string) (res splat.Result, err error) {
	src, err := os.Open(in) //nolint:gosec // operator-supplied path
	if err != nil {
		return splat.Result{}, err
	}
	defer func() { _ = src.Close() }()

	st, err := src.Stat()
	if err != nil {
		return splat.Result{}, err
	}
	if !st.Mode().IsRegular() {
		return splat.Result{}, fmt.Errorf("%s: %w", in, splat.ErrNotRegular)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".align-*")
	if err != nil {
		return splat.Result{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := splat.NewAlignedWriter(tmp)
	if _, err = io.Copy(w, src); err != nil {
		return splat.Result{}, fmt.Errorf("copy %s: %w", in, err)
	}
	res = w.Finish()

	if err = tmp.Sync(); err != nil {
		return splat.Result{}, err
	}
	if err = tmp.Close(); err != nil {
		return splat.Result{}, err
	}
	if err = os.Chmod(tmp.Name(), st.Mode().Perm()); err != nil {
		return splat.Result{}, err
	}
	if err = os.Rename(tmp.Name(), out); err != nil {
		return splat.Result{}, fmt.Errorf("replace %s: %w", out, err)
	}
	return res, nil
}

func newAlignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "align <in> [out]",
		Short: "Truncate a point cloud file to whole records",
		Long: "Copies <in> to [out] without its partial trailing record. When [out]\n" +
			"is omitted the file is rewritten in place.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[0]
			if len(args) == 2 {
				out = args[1]
			}
			res, err := alignFile(in, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points, %d bytes written, %d trailing bytes dropped\n",
				out, res.PointCount, res.Written, res.DroppedBytes)
			return nil
		},
	}
}
