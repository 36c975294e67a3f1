package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Keep the competition loaded and run several commands against it",
		Long: `Start a session for the configured competition. The document is fetched once and
its staffing snapshot is built once, so repeated viewSchedule and scoreGroup runs
skip both. A saved editSchedule refreshes the document and rebuilds the snapshot.

Session commands: status, reload, help, exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.session = newSessionStore(app.Logger)
			defer func() { app.session = nil }()

			return runSession(app, sessionCommands(cmd.Parent()), os.Stdin)
		},
	}

	return cmd
}

// sessionCommands are the root subcommands that can run inside a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
		default:
			commands[sub.Name()] = sub
		}
	}
	return commands
}

func runSession(app *AppContext, commands map[string]*cobra.Command, in io.Reader) error {
	cyan.Printf("\nSession for %s (source: %s)\n", app.Cfg.CompetitionID, app.Cfg.Source)
	fmt.Println("Type 'help' for available commands, 'exit' to leave")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print(sessionPrompt(app))
		if !scanner.Scan() {
			break
		}

		parts, err := parseCommandLine(scanner.Text())
		if err != nil {
			red.Printf("Could not parse command: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch name := parts[0]; name {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		case "help":
			printSessionHelp(commands)
		case "status":
			printSessionStatus(app)
		case "reload":
			app.forgetCompetition()
			success("The competition will be fetched again by the next command")
		default:
			target, ok := commands[name]
			if !ok {
				red.Printf("Unknown command: %s (type 'help' for available commands)\n\n", name)
				continue
			}
			if err := runInSession(target, parts[1:]); err != nil {
				red.Printf("Error: %v\n\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// runInSession runs a subcommand without the root hooks, which would set the app up again
func runInSession(cmd *cobra.Command, args []string) error {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := cmd.ParseFlags(args); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	args = cmd.Flags().Args()

	if cmd.Args != nil {
		if err := cmd.Args(cmd, args); err != nil {
			return err
		}
	}

	switch {
	case cmd.RunE != nil:
		return cmd.RunE(cmd, args)
	case cmd.Run != nil:
		cmd.Run(cmd, args)
	}
	return nil
}

// sessionPrompt shows the competition and, once built, the snapshot generation
func sessionPrompt(app *AppContext) string {
	if app.session != nil && app.session.snapshot != nil {
		generation := app.session.snapshot.Generation.String()
		return fmt.Sprintf("%s [%s]> ", app.Cfg.CompetitionID, generation[:8])
	}
	return app.Cfg.CompetitionID + "> "
}

func printSessionStatus(app *AppContext) {
	heading("Session")
	fmt.Printf("Competition: %s\n", app.Cfg.CompetitionID)
	fmt.Printf("Source:      %s\n", app.Cfg.Source)

	session := app.session
	if session == nil || session.comp == nil {
		dim.Println("Not loaded yet")
		fmt.Println()
		return
	}

	fmt.Printf("Name:        %s\n", session.comp.Name)
	fmt.Printf("Persons:     %d\n", len(session.comp.Persons))
	if session.snapshot == nil {
		fmt.Printf("Snapshot:    %s\n", dim.Sprint("not built"))
	} else {
		fmt.Printf("Snapshot:    %s (%d groups)\n", session.snapshot.Generation, len(session.snapshot.Groups()))
	}
	fmt.Println()
}

func printSessionHelp(commands map[string]*cobra.Command) {
	heading("Commands")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %-34s %s\n", commands[name].Use, commands[name].Short)
	}

	fmt.Println()
	fmt.Printf("  %-34s %s\n", "status", "Show what the session has loaded")
	fmt.Printf("  %-34s %s\n", "reload", "Fetch the competition again on the next command")
	fmt.Printf("  %-34s %s\n", "help", "Show this help message")
	fmt.Printf("  %-34s %s\n", "exit, quit", "Leave the session")
	fmt.Println()
}

// parseCommandLine splits a line into arguments. Single or double quotes group words.
func parseCommandLine(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		quoted  bool
	)

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
		}
		current.Reset()
		quoted = false
	}

	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			quoted = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	flush()

	return args, nil
}
