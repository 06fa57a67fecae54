package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"skillboard/internal/app"
	"skillboard/internal/config"
	"skillboard/internal/encryption"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var verbose bool

// newApp reads the config and creates a SkillboardApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddSkill", "Import").
func newApp(operation string) (*app.SkillboardApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewSkillboardApp(cfg, operation, app.Options{
		Passphrase: readPassphrase,
		Verbose:    verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase takes the passphrase from SKILLBOARD_PASSPHRASE or prompts for it.
func readPassphrase() (string, error) {
	if p := os.Getenv("SKILLBOARD_PASSPHRASE"); p != "" {
		return p, nil
	}
	return promptPassphrase("Passphrase: ")
}

func promptPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to prompt for a passphrase (set SKILLBOARD_PASSPHRASE)")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:   "skillboard",
	Short: "Track the skills you are learning",
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
		encrypt, _ := cmd.Flags().GetBool("encrypt")
		storageType, _ := cmd.Flags().GetString("storage")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if storageType != "" {
			cfg.Storage.Type = storageType
		}

		if encrypt {
			cfg.Encryption.Type = "age"
			enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
			if err != nil {
				return err
			}
			if enc.IsConfigured() {
				return fmt.Errorf("encryption keys already exist at %s", cfg.Encryption.PrivateKeyPath)
			}
			passphrase, err := newPassphrase()
			if err != nil {
				return err
			}
			if err := enc.Setup(passphrase); err != nil {
				return fmt.Errorf("creating encryption keys: %w", err)
			}
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Storage:  %s\n", cfg.Storage.Type)
		if encrypt {
			fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
			fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		}
		return nil
	},
}

// newPassphrase asks for a passphrase twice. SKILLBOARD_PASSPHRASE skips the prompt.
func newPassphrase() (string, error) {
	if p := os.Getenv("SKILLBOARD_PASSPHRASE"); p != "" {
		return p, nil
	}
	first, err := promptPassphrase("New passphrase: ")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(first) == "" {
		return "", errors.New("passphrase must not be empty")
	}
	second, err := promptPassphrase("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Log Level:   %s\n", cfg.LogLevel)
		fmt.Printf("Storage:     %s\n", describeStorage(cfg.Storage))
		fmt.Printf("Encryption:  %s\n", cfg.Encryption.Type)
		fmt.Printf("Suggestions: delay %dms, timeout %dms\n", cfg.Suggestions.DelayMS, cfg.Suggestions.TimeoutMS)
		return nil
	},
}

func describeStorage(s config.StorageConfig) string {
	switch s.Type {
	case "filesystem", "sqlite":
		return fmt.Sprintf("%s (%s)", s.Type, s.DataDir)
	case "s3":
		return fmt.Sprintf("s3 (s3://%s/%s)", s.S3Bucket, s.S3Prefix)
	default:
		return s.Type
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror log output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().Bool("encrypt", false, "Encrypt stored data with a new age key pair")
	configInitCmd.Flags().String("storage", "", "Storage backend: memory, filesystem, sqlite or s3")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
