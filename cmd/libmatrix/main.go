// SPDX-License-Identifier: MIT

// Command libmatrix exercises the matrix package from the shell:
//
//	libmatrix demo               # deep-copy scenario on a 2x3 matrix
//	libmatrix show m.yaml        # print a YAML matrix as a table
//	libmatrix copy a.yaml b.yaml # deep-copy a matrix file
//	libmatrix info               # allocator limit and statistics
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/islazy/tui"
	"github.com/katalvlaran/libmatrix/buffer"
	"github.com/katalvlaran/libmatrix/internal/config"
	"github.com/katalvlaran/libmatrix/internal/matfile"
	"github.com/katalvlaran/libmatrix/matrix"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
	memLimit   string
	logFile    string

	alloc   *buffer.Gonum
	logSink *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "libmatrix",
		Short:             "dense matrix value type playground",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logSink != nil {
				closeQuietly("log file", logSink.Close)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentFlags().StringVar(&memLimit, "mem-limit", "", "allocation ceiling, e.g. \"512 MiB\", \"auto\" or \"unlimited\"")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "demo",
			Short: "run the deep-copy scenario",
			Args:  cobra.NoArgs,
			RunE:  runDemo,
		},
		&cobra.Command{
			Use:   "show [file]",
			Short: "print a YAML matrix",
			Args:  cobra.ExactArgs(1),
			RunE:  showMatrix,
		},
		&cobra.Command{
			Use:   "copy [src] [dst]",
			Short: "deep-copy a YAML matrix file",
			Args:  cobra.ExactArgs(2),
			RunE:  copyMatrix,
		},
		&cobra.Command{
			Use:   "info",
			Short: "print allocator statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printStats()
				return nil
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves the configuration (file, then flags) and builds the allocator.
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("mem-limit") {
		cfg.MemoryLimit = memLimit
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logSink = f
		log.SetOutput(f)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	limit, err := cfg.MemoryLimitBytes()
	if err != nil {
		return err
	}
	alloc = buffer.NewGonum(
		buffer.WithMemoryLimit(limit),
		buffer.WithLogger(log.StandardLogger()),
	)
	log.Debugf("allocator ready, limit %s", humanize.Bytes(alloc.Stats().Limit))

	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	m, err := matrix.New(2, 3, matrix.WithAllocator(alloc))
	if err != nil {
		return err
	}
	defer closeQuietly("matrix", m.Release)

	if err = m.Set(0, 0, 5.0); err != nil {
		return err
	}
	if err = m.Set(1, 2, 9.0); err != nil {
		return err
	}

	cp, err := matrix.NewFrom(m)
	if err != nil {
		return err
	}
	defer closeQuietly("matrix", cp.Release)
	if err = cp.Set(0, 0, 1.0); err != nil {
		return err
	}

	fmt.Println(tui.Bold("original"))
	if err = printMatrix(m); err != nil {
		return err
	}
	fmt.Println(tui.Bold("copy (0,0 changed)"))
	if err = printMatrix(cp); err != nil {
		return err
	}
	printStats()

	return nil
}

func showMatrix(cmd *cobra.Command, args []string) error {
	m, err := matfile.Load(args[0], matrix.WithAllocator(alloc))
	if err != nil {
		return err
	}
	defer closeQuietly("matrix", m.Release)

	return printMatrix(m)
}

func copyMatrix(cmd *cobra.Command, args []string) error {
	src, err := matfile.Load(args[0], matrix.WithAllocator(alloc))
	if err != nil {
		return err
	}
	defer closeQuietly("matrix", src.Release)

	dst, err := src.Clone()
	if err != nil {
		return err
	}
	defer closeQuietly("matrix", dst.Release)

	if err = matfile.Save(args[1], dst); err != nil {
		return err
	}
	log.Infof("copied %s -> %s", args[0], args[1])

	return nil
}

// closeQuietly runs a deferred release and logs its failure at Debug;
// the command's own result is already decided by then.
func closeQuietly(what string, fn func() error) {
	if err := fn(); err != nil {
		log.WithError(err).WithField("resource", what).Debug("release failed")
	}
}

// printMatrix renders m as a table with row and column indices.
func printMatrix(m *matrix.Matrix) error {
	rows, cols, err := m.Shape()
	if err != nil {
		return err
	}

	columns := []string{""}
	for j := 0; j < cols; j++ {
		columns = append(columns, strconv.Itoa(j))
	}
	table := [][]string{}
	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		table = append(table, row)
	}

	tui.Table(os.Stdout, columns, table)

	return nil
}

func printStats() {
	st := alloc.Stats()

	limit := "unlimited"
	if st.Limit != buffer.Unlimited {
		limit = humanize.Bytes(st.Limit)
	}
	host := "unknown"
	if hm := buffer.HostMemory(); hm != buffer.Unlimited {
		host = humanize.Bytes(hm)
	}

	columns := []string{"limit", "host", "live", "live bytes", "allocs", "frees"}
	rows := [][]string{{
		limit,
		host,
		strconv.Itoa(st.Live),
		humanize.Bytes(st.LiveBytes),
		strconv.FormatUint(st.Allocs, 10),
		strconv.FormatUint(st.Frees, 10),
	}}

	tui.Table(os.Stdout, columns, rows)
}
