package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/webview2"
)

type evalOptions struct {
	file      string
	html      string
	url       string
	bootstrap bool
	messages  bool
}

func newEvalCmd(opts *options) *cobra.Command {
	eo := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval [script]",
		Short: "Run a script in a webview and print its JSON result",
		Example: `  webview2 eval '"foo" + "bar"'
  webview2 eval --html page.html 'document.title'
  webview2 eval --messages 'chrome.webview.postMessage({ok: true})'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := eo.script(args)
			if err != nil {
				return err
			}
			return runEval(cmd.Context(), opts, eo, script, newPrinter(cmd.OutOrStdout()))
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&eo.file, "file", "f", "", "read the script from a file")
	flags.StringVar(&eo.html, "html", "", "load this HTML file first")
	flags.StringVar(&eo.url, "url", "", "navigate to this URL first")
	flags.BoolVar(&eo.bootstrap, "bootstrap", false, "install window.external.invoke before loading")
	flags.BoolVarP(&eo.messages, "messages", "m", false, "print web messages posted by the page")
	return cmd
}

func (eo *evalOptions) script(args []string) (string, error) {
	switch {
	case eo.file != "" && len(args) > 0:
		return "", errors.InvalidInput(errors.PhaseConfig, "give a script or --file, not both")
	case eo.file != "":
		data, err := os.ReadFile(eo.file)
		if err != nil {
			return "", errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read script")
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", errors.InvalidInput(errors.PhaseConfig, "no script given")
}

func runEval(ctx context.Context, opts *options, eo *evalOptions, script string, out *printer) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.load(ctx, eo); err != nil {
		return err
	}

	result, messages, err := s.evaluate(ctx, script)
	if err != nil {
		return err
	}
	if eo.messages {
		for _, m := range messages {
			out.line("message from %s:", m.Source)
			out.json(m.JSON)
		}
	}
	out.json(result)
	return nil
}

// load prepares the page named by the eval flags.
func (s *session) load(ctx context.Context, eo *evalOptions) error {
	return s.do(ctx, func(ctx context.Context, view *webview2.WebView) error {
		if eo.bootstrap {
			if _, err := webview2.Bootstrap(ctx, view); err != nil {
				return err
			}
		}

		var (
			result webview2.NavigationResult
			err    error
		)
		switch {
		case eo.html != "":
			data, rerr := os.ReadFile(eo.html)
			if rerr != nil {
				return errors.Wrap(errors.PhaseConfig, errors.KindNotFound, rerr, "read page")
			}
			result, err = view.NavigateToString(ctx, string(data))
		case eo.url != "":
			result, err = view.Navigate(ctx, eo.url)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		if !result.IsSuccess {
			return errors.New(errors.PhaseCall, errors.KindFailed).
				Method("Navigate").
				Detail("navigation to %s failed with web error status %d", strings.TrimSpace(eo.url+eo.html), result.WebErrorStatus).
				Build()
		}
		return nil
	})
}
