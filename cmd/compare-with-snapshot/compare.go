package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/danlynn/compare-with-snapshot/internal/diffview"
	"github.com/danlynn/compare-with-snapshot/internal/export"
	"github.com/danlynn/compare-with-snapshot/internal/helper"
)

var errNoChoice = errors.New("no snapshot chosen")

func (a *app) list(ctx context.Context, file string) error {
	records, err := a.client.ListDiffering(ctx, file)
	if err != nil {
		return err
	}
	printRecords(a.stdout, records)
	return nil
}

func (a *app) compare(ctx context.Context, file string, pick int, printDiff bool) error {
	records, err := a.client.ListDiffering(ctx, file)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.stdout, "No snapshot holds a different version of this file.")
		return nil
	}

	if pick == 0 {
		printRecords(a.stdout, records)
		pick, err = prompt(a.stdin, a.stdout, len(records))
		if err != nil {
			return err
		}
	}
	chosen, err := choose(records, pick)
	if err != nil {
		return err
	}

	a.log.Info("comparing", "file", file, "snapshot", chosen.ID, "label", chosen.Label)

	return export.With(ctx, a.client, chosen.Label, chosen.Pathname, func(tempPath string) error {
		if printDiff || len(a.cfg.Viewer.Command) == 0 {
			return diffview.Files(a.stdout, tempPath, file, chosen.Label, file)
		}
		return a.view(ctx, tempPath, file)
	})
}

// view runs the external viewer and waits for it to exit.
func (a *app) view(ctx context.Context, tempPath, file string) error {
	viewer := a.cfg.Viewer.Command
	args := append(append([]string(nil), viewer[1:]...), tempPath, file)

	cmd := exec.CommandContext(ctx, viewer[0], args...)
	cmd.Stdin = a.stdin
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("viewer %s: %w", viewer[0], err)
	}
	return nil
}

func printRecords(w io.Writer, records []helper.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No snapshot holds a different version of this file.")
		return
	}
	for i, r := range records {
		fmt.Fprintf(w, "%3d  %s  (snapshot %s)\n", i+1, r.Label, r.ID)
	}
}

func prompt(in io.Reader, out io.Writer, n int) (int, error) {
	fmt.Fprintf(out, "Compare with which snapshot [1-%d]? ", n)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, errNoChoice
	}

	pick, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", line)
	}
	return pick, nil
}

func choose(records []helper.Record, pick int) (helper.Record, error) {
	if pick < 1 || pick > len(records) {
		return helper.Record{}, fmt.Errorf("choice %d out of range 1-%d", pick, len(records))
	}
	return records[pick-1], nil
}
