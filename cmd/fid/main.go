package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fid-go/internal/app"
	"fid-go/internal/config"
	"fid-go/internal/fid"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoMatch makes match exit non-zero without printing an error.
var errNoMatch = errors.New("paths differ")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newApp reads the config and creates a FidApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Hash", "Remove").
func newApp(cmd *cobra.Command, operation string, params ...string) (*app.FidApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := defaults.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewFidApp(cfg, app.Options{Verbose: verbose}, operation, params...)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:           "fid",
	Short:         "File identity: type, size, hash and comparison of paths",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Initialize config file
		if err := config.Init(defaults.ConfigPath, defaults.NewConfig()); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get application defaults
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := defaults.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// Display config
		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Log Level:    %s\n", cfg.LogLevel)
		fmt.Printf("Protect:      %s\n", strings.Join(cfg.Remove.Protect, ", "))
		fmt.Printf("Protect File: %s\n", cfg.Remove.ProtectFile)
		fmt.Printf("Confirm rm:   %v\n", cfg.Remove.Confirm)
		fmt.Printf("Metrics File: %s\n", cfg.Metrics.Textfile)
		return nil
	},
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info PATH",
	Short: "Describe a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Describe", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		d, err := a.Describe(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Path:     %s\n", d.Path)
		fmt.Printf("Type:     %s\n", d.Type)
		if d.Type == fid.TypeMissing {
			return nil
		}
		fmt.Printf("Size:     %d\n", d.Size)
		fmt.Printf("Mode:     %s\n", d.Mode)
		fmt.Printf("Modified: %s\n", d.ModTime.Format("2006-01-02 15:04:05"))
		if d.Owner != nil {
			fmt.Printf("Owner:    %d:%d\n", d.Owner.UID, d.Owner.GID)
		}
		if d.Hash != "" {
			fmt.Printf("SHA-256:  %s\n", d.Hash)
		}
		return nil
	},
}

// type command
var typeCmd = &cobra.Command{
	Use:   "type PATH",
	Short: "Print whether a path is a directory, then whether it is a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "TypeOf", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		isDir, isFile := a.TypeOf(args[0])
		fmt.Println(isDir)
		fmt.Println(isFile)
		return nil
	},
}

// size command
var sizeCmd = &cobra.Command{
	Use:   "size PATH",
	Short: "Print the size of a path in bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Size", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		size, err := a.Size(args[0])
		if err != nil {
			return err
		}
		fmt.Println(size)
		return nil
	},
}

// hash command
var hashCmd = &cobra.Command{
	Use:   "hash PATH...",
	Short: "Print SHA-256 hashes of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Hash", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		var firstErr error
		for _, p := range args {
			sum, err := a.Hash(p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Printf("%s  %s\n", sum, p)
		}
		if firstErr != nil {
			return fmt.Errorf("one or more paths could not be hashed")
		}
		return nil
	},
}

// match command
var matchCmd = &cobra.Command{
	Use:   "match PATH1 PATH2",
	Short: "Compare the content of two files",
	Long: "Compare two files by SHA-256 hash, or byte for byte with --deep.\n" +
		"Exits 0 when both are regular files with the same content, 1 otherwise.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deep, _ := cmd.Flags().GetBool("deep")

		a, err := newApp(cmd, "Match", args...)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Match(args[0], args[1], deep) {
			fmt.Println("match")
			return nil
		}
		fmt.Println("differ")
		return errNoMatch
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Remove a file or a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp(cmd, "Remove", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		// Refuse before prompting; Remove repeats the check for the delete itself.
		if err := a.CheckRemovable(args[0]); err != nil {
			return err
		}

		if !force && a.ConfirmRemove() && term.IsTerminal(int(os.Stdin.Fd())) {
			ok, err := confirm(os.Stdin, os.Stdout, fmt.Sprintf("Remove %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		removed, err := a.Remove(args[0])
		if err != nil {
			return err
		}

		if removed == fid.TypeMissing || removed == fid.TypeOther {
			fmt.Printf("Nothing to remove: %s\n", args[0])
			return nil
		}
		fmt.Printf("Removed %s: %s\n", removed, args[0])
		return nil
	},
}

// confirm asks a y/N question. Anything but y or yes means no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging, echoed to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().BoolP("deep", "d", false, "Compare byte for byte instead of by hash")
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolP("force", "f", false, "Do not ask for confirmation")
}
