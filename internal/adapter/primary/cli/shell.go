package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wavelink-cli/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell that runs subcommands line by line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(cmd, prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "wavelink> ", "shell prompt")
	return cmd
}

func runInteractiveShell(cmd *cobra.Command, prompt string) error {
	historyFile := filepath.Join(os.TempDir(), "wavelink-cli-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sh := &shell{
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
		verbosity: verbosity,
		baseArgs:  inheritedArgs(cmd),
	}
	fmt.Fprintln(sh.out, "Interactive shell. Type 'help' for usage, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(sh.out)
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return err
		}
		if sh.handle(line) {
			return nil
		}
	}
}

// shell holds state that survives between lines.
type shell struct {
	out       io.Writer
	errOut    io.Writer
	verbosity int
	baseArgs  []string
}

// handle runs one input line and reports whether the shell should exit.
func (s *shell) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch line {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye!")
		return true
	case "help":
		printShellHelp(s.out)
		return false
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(s.out, "Parse error: %v\n", err)
		return false
	}
	if len(tokens) == 0 {
		return false
	}
	switch tokens[0] {
	case "log":
		if err := s.handleLog(tokens[1:]); err != nil {
			fmt.Fprintf(s.out, "log: %v\n", err)
		}
		return false
	case "shell":
		fmt.Fprintln(s.out, "Already in the shell. Enter another command or 'exit' to quit.")
		return false
	}

	if err := s.executeArgs(tokens); err != nil {
		fmt.Fprintf(s.errOut, "Error: %s\n", err)
	}
	return false
}

// executeArgs runs tokens on a fresh command tree so flags never leak between lines.
func (s *shell) executeArgs(args []string) error {
	root := NewRootCmd()
	root.SetOut(s.out)
	root.SetErr(s.errOut)
	root.SetArgs(append(append([]string(nil), s.baseArgs...), args...))

	// Set after NewRootCmd, which resets the counter; a -v on the line adds to the session level.
	verbosity = s.verbosity
	err := root.Execute()
	logging.SetVerbosity(s.verbosity)
	return err
}

func (s *shell) handleLog(args []string) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Fprintf(s.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		s.verbosity = count
	case vcount > 0:
		s.verbosity = vcount
	default:
		fmt.Fprintf(s.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = s.verbosity
	logging.SetVerbosity(s.verbosity)
	fmt.Fprintf(s.out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

// inheritedArgs carries connection flags given to "shell" over to every line.
func inheritedArgs(cmd *cobra.Command) []string {
	var args []string
	for _, name := range []string{"config", "host", "port", "output"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			args = append(args, "--"+name+"="+f.Value.String())
		}
	}
	return args
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `Examples:
  info                               # application info
  mix list                           # list mixes
  output list -o table               # list outputs as a table
  channel isolate Music "Stream Mix" # mute everything else in a mix
  input set-gain Microphone 65       # set input gain
  config get                         # show effective settings
  log -vv                            # more detailed logging
  log --show                         # show the current log level
  exit / quit                        # leave the shell`)
}
