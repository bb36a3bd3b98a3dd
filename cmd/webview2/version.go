package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wippyai/webview2/webview2"
)

// Set with -ldflags.
var (
	semVersion = "v0.0.0-dev"
	gitCommit  = "unknown"
)

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version [browser-folder]",
		Short: "Print the tool version and the browser runtime version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}
			out := newPrinter(cmd.OutOrStdout())
			out.line("webview2 %s (%s) %s %s/%s", semVersion, gitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)

			return withLoader(opts, func(loader webview2.Loader) error {
				v, err := webview2.GetAvailableBrowserVersionString(loader, folder)
				if err != nil {
					return err
				}
				out.line("browser %s (%s runtime)", v, opts.cfg.Runtime)
				return nil
			})
		},
	}
}

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <version> <version>",
		Short: "Compare two browser versions; prints -1, 0 or 1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoader(opts, func(loader webview2.Loader) error {
				c, err := webview2.CompareBrowserVersions(loader, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
}

// withLoader calls fn with the configured loader on a locked thread. The
// flat entry points need no pump.
func withLoader(opts *options, fn func(webview2.Loader) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	_, loader, release, err := openLoader(opts.cfg)
	if err != nil {
		return err
	}
	defer release()
	return fn(loader)
}
