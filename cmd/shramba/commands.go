package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/erazemk/shramba/internal/export"
	"github.com/erazemk/shramba/internal/model"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the inventory as CSV, HTML or XLSX",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "csv, html or xlsx"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file (- for stdout)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			render, err := exporter(cmd.String("format"))
			if err != nil {
				return err
			}

			// Keep stdout clean when the export itself goes there.
			out := cmd.String("out")
			logOut := cmd.Root().Writer
			if out == "-" {
				logOut = cmd.Root().ErrWriter
			}

			svc, _, cleanup, err := openService(ctx, cmd, logOut)
			if err != nil {
				return err
			}
			defer cleanup()

			items, locs, err := svc.ExportData(ctx)
			if err != nil {
				return err
			}

			if out == "-" {
				return render(cmd.Root().Writer, items, locs)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := render(f, items, locs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			slog.Info("inventory exported", "format", cmd.String("format"), "items", len(items), "path", out)
			return nil
		},
	}
}

type renderFunc func(w io.Writer, items []model.Item, locs []model.Location) error

func exporter(format string) (renderFunc, error) {
	switch format {
	case "csv":
		return export.CSV, nil
	case "html":
		return func(w io.Writer, items []model.Item, locs []model.Location) error {
			return export.HTML(w, items, locs, time.Now())
		}, nil
	case "xlsx":
		return export.XLSX, nil
	}
	return nil, fmt.Errorf("unknown export format %q (want csv, html or xlsx)", format)
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Fill an empty inventory with default locations, items and achievements",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, _, cleanup, err := openService(ctx, cmd, cmd.Root().Writer)
			if err != nil {
				return err
			}
			defer cleanup()

			seeded, err := svc.Seed(ctx)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.Root().Writer, "Default data seeded.")
			} else {
				fmt.Fprintln(cmd.Root().Writer, "Inventory is not empty, nothing seeded.")
			}
			return nil
		},
	}
}
