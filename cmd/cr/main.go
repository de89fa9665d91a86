package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cr-go/internal/adapter"
	"cr-go/internal/app"
	"cr-go/internal/config"
	"cr-go/internal/rec"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "RecordChannel", "CreateFile").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "cr",
	Short: "Channel message recorder and file ledger",
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
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new host ID
		hostID := uuid.New().String()

		cfg := config.NewConfig(hostID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:    %s\n", cfg.HostID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Output Dir: %s\n", cfg.OutputDir)
		fmt.Printf("Ledger Dir: %s\n", cfg.LedgerDir)
		return nil
	},
}

var configKeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the archive encryption key pair",
	RunE:  runConfigKeygen,
}

// record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record channel messages to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		token, _ := cmd.Flags().GetString("token")
		channel, _ := cmd.Flags().GetString("channel")
		server, _ := cmd.Flags().GetString("server")
		port, _ := cmd.Flags().GetInt("port")
		duration, _ := cmd.Flags().GetInt("duration")
		limit, _ := cmd.Flags().GetInt("limit")
		outFormat, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		switch platform {
		case "discord", "slack":
			if channel == "" {
				return fmt.Errorf("%s recording requires --token and --channel", platform)
			}
			if token == "" {
				var err error
				token, err = promptSecret("Bot token")
				if err != nil {
					return fmt.Errorf("%s recording requires --token and --channel", platform)
				}
			}
		case "irc":
			if server == "" || channel == "" {
				return fmt.Errorf("irc recording requires --server and --channel")
			}
		case "demo":
			// No connection parameters needed.
		default:
			return fmt.Errorf("unknown platform: %q", platform)
		}

		a, err := newApp("RecordChannel")
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.RecordChannel(context.Background(), platform, adapter.Options{
			Token:  token,
			Server: server,
			Port:   port,
		}, rec.RecordOptions{
			Channel:  channel,
			Limit:    limit,
			Duration: time.Duration(duration) * time.Minute,
		})
		if err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}

		path, err := a.Flush(outFormat, output)
		if err != nil {
			return fmt.Errorf("saving messages: %w", err)
		}

		fmt.Printf("\nRecording completed! Output saved to: %s\n", path)
		fmt.Printf("Total messages recorded: %d\n", count)
		return nil
	},
}

// ledger command
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the file ledger",
}

var ledgerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a file and record it",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		content, _ := cmd.Flags().GetString("content")
		description, _ := cmd.Flags().GetString("description")
		fileType, _ := cmd.Flags().GetString("type")
		tags, _ := cmd.Flags().GetString("tags")

		if file == "" || content == "" {
			return fmt.Errorf("creating a file requires --file and --content")
		}

		a, err := newApp("CreateFile")
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.CreateFile(file, content, description, fileType, splitTags(tags))
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}

		fmt.Printf("Created file: %s (record #%d)\n", record.FilePath, record.ID)
		return nil
	},
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded files",
	RunE: func(cmd *cobra.Command, args []string) error {
		filterType, _ := cmd.Flags().GetString("filter-type")
		filterTag, _ := cmd.Flags().GetString("filter-tag")

		a, err := newApp("ListFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		files := a.ListFiles(filterType, filterTag)
		if len(files) == 0 {
			fmt.Println("No matching files found.")
			return nil
		}

		for _, f := range files {
			fmt.Printf("%d. %s (%s)\n", f.ID, f.FilePath, f.FileType)
			if f.Description != "" {
				fmt.Printf("   %s\n", f.Description)
			}
		}
		return nil
	},
}

var ledgerInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "View a file record",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("viewing a file record requires --file")
		}

		a, err := newApp("FileInfo")
		if err != nil {
			return err
		}
		defer a.Close()

		info := a.FileInfo(file)
		if info == nil {
			fmt.Printf("No record found for: %s\n", file)
			return nil
		}

		fmt.Printf("Path:        %s\n", info.FilePath)
		fmt.Printf("Description: %s\n", info.Description)
		fmt.Printf("Type:        %s\n", info.FileType)
		fmt.Printf("Tags:        %s\n", strings.Join(info.Tags, ", "))
		fmt.Printf("Created:     %s\n", info.CreatedAt)
		if info.UpdatedAt != "" {
			fmt.Printf("Updated:     %s\n", info.UpdatedAt)
		}
		fmt.Printf("Size:        %d bytes\n", info.SizeBytes)
		return nil
	},
}

var ledgerUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a file record's description",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		description, _ := cmd.Flags().GetString("description")
		if file == "" || description == "" {
			return fmt.Errorf("updating a description requires --file and --description")
		}

		a, err := newApp("UpdateFileDescription")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.UpdateFileDescription(file, description); err != nil {
			return fmt.Errorf("updating description: %w", err)
		}

		fmt.Printf("Updated description for: %s\n", file)
		return nil
	},
}

var ledgerDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a file record (the file itself is untouched)",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("deleting a record requires --file")
		}

		a, err := newApp("DeleteFileRecord")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteFileRecord(file); err != nil {
			return fmt.Errorf("deleting record: %w", err)
		}

		fmt.Printf("Deleted record for: %s\n", file)
		return nil
	},
}

var ledgerReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a ledger report",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp("Report")
		if err != nil {
			return err
		}
		defer a.Close()

		report := a.Report()
		if output == "" {
			fmt.Print(report)
			return nil
		}

		if err := os.WriteFile(output, []byte(report), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to: %s\n", output)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				d := op.FinishedAt.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-22s  %s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

// splitTags parses a comma-separated tag list, dropping empty entries.
func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeygenCmd)

	// record flags
	recordCmd.Flags().String("platform", "demo", "Platform to record from (discord|slack|irc|demo)")
	recordCmd.Flags().String("token", "", "Bot token (for Discord/Slack)")
	recordCmd.Flags().String("channel", "", "Channel ID or name to record")
	recordCmd.Flags().String("server", "", "Server address (for IRC)")
	recordCmd.Flags().Int("port", 6667, "Server port (for IRC)")
	recordCmd.Flags().Int("duration", 60, "Recording duration in minutes (for IRC)")
	recordCmd.Flags().Int("limit", 0, "Message limit to fetch")
	recordCmd.Flags().String("format", "json", "Output format (json|csv|markdown|txt)")
	recordCmd.Flags().String("output", "", "Output filename")

	// ledger subcommands
	ledgerCreateCmd.Flags().StringP("file", "f", "", "File path (relative to the ledger base directory)")
	ledgerCreateCmd.Flags().StringP("content", "c", "", "File content")
	ledgerCreateCmd.Flags().StringP("description", "d", "", "File description")
	ledgerCreateCmd.Flags().StringP("type", "t", "text", "File type")
	ledgerCreateCmd.Flags().String("tags", "", "Tags (comma separated)")
	ledgerListCmd.Flags().String("filter-type", "", "Filter by file type")
	ledgerListCmd.Flags().String("filter-tag", "", "Filter by tag")
	ledgerInfoCmd.Flags().StringP("file", "f", "", "File path")
	ledgerUpdateCmd.Flags().StringP("file", "f", "", "File path")
	ledgerUpdateCmd.Flags().StringP("description", "d", "", "New description")
	ledgerDeleteCmd.Flags().StringP("file", "f", "", "File path")
	ledgerReportCmd.Flags().String("output", "", "Write the report to a file instead of stdout")

	ledgerCmd.AddCommand(ledgerCreateCmd)
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerInfoCmd)
	ledgerCmd.AddCommand(ledgerUpdateCmd)
	ledgerCmd.AddCommand(ledgerDeleteCmd)
	ledgerCmd.AddCommand(ledgerReportCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
