package main

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"src.lined.dev/pkg/cli"
	"src.lined.dev/pkg/complete"
	"src.lined.dev/pkg/edit"
	"src.lined.dev/pkg/histutil"
	"src.lined.dev/pkg/logutil"
	"src.lined.dev/pkg/store"
	"src.lined.dev/pkg/ui"
)

var warn = color.New(color.FgYellow)

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		historyPath string
		mouseMode   string
		logPath     string
	)
	cmd := &cobra.Command{
		Use:           "lined",
		Short:         "Interactive demo of the lined line editor",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logPath != "" {
				if err := logutil.SetOutputFile(logPath); err != nil {
					return err
				}
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("history") {
				cfg.History.File = historyPath
			}
			if mouseMode != "" {
				cfg.Mouse = mouseMode
			}
			err = run(cfg)
			if err != nil {
				color.Red("lined: %v", err)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	cmd.Flags().StringVar(&historyPath, "history", "", "path to the history database (empty disables history)")
	cmd.Flags().StringVar(&mouseMode, "mouse", "", "mouse tracking mode: off, normal, button or any")
	cmd.Flags().StringVar(&logPath, "log", "", "write debug logs to this file")
	return cmd
}

func run(cfg config) error {
	mouse, err := parseMouseMode(cfg.Mouse)
	if err != nil {
		return err
	}

	var history histutil.Store
	if cfg.History.File != "" {
		db, err := store.NewStore(cfg.History.File)
		if err != nil {
			// A shell without history is still a shell.
			warn.Printf("cannot open history %s: %v\n", cfg.History.File, err)
		} else {
			defer db.Close()
			history, err = histutil.NewDBStore(db)
			if err != nil {
				warn.Printf("cannot read history: %v\n", err)
				history = nil
			}
		}
	}

	completer := complete.NewArgumentCompleter(
		complete.NewStringsCompleter(cfg.Commands...),
		complete.NewFilesCompleter(""),
	)

	var rprompt cli.Prompt
	if cfg.RPrompt != "" {
		rprompt = cli.NewConstPrompt(ui.T(cfg.RPrompt, ui.Inverse))
	}
	ed := edit.NewEditor(edit.ReaderConfig{
		Name:          "word",
		Prompt:        cli.NewConstPrompt(ui.T(cfg.Prompt, ui.Bold)),
		RPrompt:       rprompt,
		Highlighter:   cmdHighlighter{commandSet(cfg.Commands)},
		Completer:     completer,
		History:       history,
		CheckComplete: isCompleteCommand,

		SecondaryPromptPattern: cfg.SecondaryPrompt,

		HistoryIgnoreDups:  cfg.History.IgnoreDups,
		HistoryIgnoreSpace: cfg.History.IgnoreSpace,
		HistoryBeep:        cfg.History.Beep,
		HistoryExpand:      cfg.History.Expand,
		HistoryVerify:      cfg.History.Verify,

		AutoFreshLine: true,
		MouseTracking: mouse,
		MaxHeight:     cfg.MaxHeight,
	})

	for {
		line, err := ed.ReadLine()
		switch err {
		case nil:
			if strings.TrimSpace(line) == "exit" {
				return nil
			}
			color.Cyan("+ %s", line)
		case cli.ErrInterrupted:
			// Aborted line; start over.
		case io.EOF:
			return nil
		default:
			return err
		}
	}
}

func commandSet(commands []string) map[string]bool {
	set := make(map[string]bool, len(commands))
	for _, c := range commands {
		set[c] = true
	}
	return set
}

// isCompleteCommand reports whether the code forms a complete command: no
// trailing backslash and no unclosed quote.
func isCompleteCommand(code string) bool {
	if strings.HasSuffix(code, "\\") && !strings.HasSuffix(code, "\\\\") {
		return false
	}
	var quote rune
	for _, r := range code {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == r:
			quote = 0
		}
	}
	return quote == 0
}

// cmdHighlighter highlights the command word: green if it is a known
// command, red otherwise.
type cmdHighlighter struct {
	commands map[string]bool
}

func (h cmdHighlighter) Get(code string) (ui.Text, []ui.Text) {
	trimmed := strings.TrimLeft(code, " \t")
	lead := code[:len(code)-len(trimmed)]
	cmd := trimmed
	rest := ""
	if i := strings.IndexAny(trimmed, " \t\n"); i >= 0 {
		cmd, rest = trimmed[:i], trimmed[i:]
	}
	if cmd == "" {
		return ui.T(code), nil
	}
	styling := ui.FgRed
	var tips []ui.Text
	if h.commands[cmd] {
		styling = ui.FgGreen
	} else {
		tips = append(tips, ui.T("unknown command: "+cmd, ui.FgRed))
	}
	return ui.Concat(ui.T(lead), ui.T(cmd, styling), ui.T(rest)), tips
}

func (cmdHighlighter) LateUpdates() <-chan struct{} { return nil }
