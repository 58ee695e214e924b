// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/splatfolio/internal/splat"
)

type inspectReport struct {
	Path         string        `json:"path"`
	FileSize     int64         `json:"file_size"`
	PointCount   uint64        `json:"point_count"`
	AlignedSize  int64         `json:"aligned_size"`
	TrailingSize int64         `json:"trailing_bytes"`
	Bounds       *splat.Bounds `json:"bounds,omitempty"`
}

func inspectFile(path string) (inspectReport, error) {
	asset, err := splat.Open(path, splat.Lenient)
	if err != nil {
		return inspectReport{}, err
	}
	defer func() { _ = asset.Close() }()

	report := inspectReport{
		Path:         path,
		FileSize:     asset.Info.FileSize,
		PointCount:   asset.Info.PointCount,
		AlignedSize:  asset.Info.AlignedSize,
		TrailingSize: asset.Info.DroppedBytes(),
	}

	bounds, _, ok, err := splat.ScanBounds(asset)
	if err != nil {
		return inspectReport{}, fmt.Errorf("read %s: %w", path, err)
	}
	if ok {
		report.Bounds = &bounds
	}
	return report, nil
}

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show record count, alignment and bounds of a point cloud file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := inspectFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "file:          %s\n", report.Path)
			fmt.Fprintf(out, "size:          %d bytes\n", report.FileSize)
			fmt.Fprintf(out, "points:        %d\n", report.PointCount)
			fmt.Fprintf(out, "aligned size:  %d bytes\n", report.AlignedSize)
			if report.TrailingSize > 0 {
				fmt.Fprintf(out, "misaligned:    %d trailing bytes\n", report.TrailingSize)
			} else {
				fmt.Fprintln(out, "misaligned:    no")
			}
			if b := report.Bounds; b != nil {
				fmt.Fprintf(out, "bounds min:    %g %g %g\n", b.Min[0], b.Min[1], b.Min[2])
				fmt.Fprintf(out, "bounds max:    %g %g %g\n", b.Max[0], b.Max[1], b.Max[2])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
