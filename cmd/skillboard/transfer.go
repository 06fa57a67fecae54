package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export skills and preferences as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp("Export")
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.Export()
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		if output == "" || output == "-" {
			fmt.Println(doc)
			return nil
		}
		if err := atomic.WriteFile(output, strings.NewReader(doc+"\n")); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import an exported JSON document (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Import(string(data))
		if err != nil {
			return fmt.Errorf("importing: %w", err)
		}

		if result.SkillsImported {
			fmt.Printf("Imported %d skill(s)\n", result.SkillCount)
		}
		if result.PreferencesImported {
			fmt.Println("Imported preferences")
		}
		if !result.SkillsImported && !result.PreferencesImported {
			fmt.Println("Nothing to import.")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
