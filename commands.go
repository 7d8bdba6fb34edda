package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/sakura/internal/excel"
	"github.com/example/sakura/internal/notify"
	"github.com/example/sakura/internal/scheduler"
	"github.com/example/sakura/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand(logger *logrus.Entry) *cobra.Command {
	root := &cobra.Command{
		Use:           "sakura",
		Short:         "Sakura Sensei study engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(logger),
		newExportCommand(logger),
		newImportCommand(logger),
		newAccountsCommand(logger),
		newCatalogCommand(logger),
	)
	return root
}

func newServeCommand(logger *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the due-review reminder scheduler until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()

			a.service.Events().OnBadgeUnlock(func(b models.Badge) {
				logger.WithFields(logrus.Fields{"badge": b.ID, "name": b.Name}).Info("Badge unlocked")
			})

			notifiers := notify.Multi{notify.NewLog(logger)}
			if a.cfg.TelegramEnabled() {
				tg, err := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID, logger)
				if err != nil {
					return err
				}
				notifiers = append(notifiers, tg)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s := scheduler.New(a.service, notifiers, a.cfg.NotificationStartHour, a.cfg.NotificationEndHour, logger)
			if err := s.Start(ctx); err != nil {
				return err
			}
			logger.Info("Scheduler started. Press Ctrl+C to stop.")

			<-ctx.Done()
			logger.Info("Stopping scheduler...")
			s.Stop()
			logger.Info("Scheduler stopped successfully")
			return nil
		},
	}
}

func newExportCommand(logger *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "export <userId>",
		Short: "Print a transfer code for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()

			code, err := a.service.ExportUser(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func newImportCommand(logger *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "import <code>",
		Short: "Restore an account from a transfer code and sign it in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()

			profile, err := a.service.ImportPayload(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, profile)
		},
	}
}

func newAccountsCommand(logger *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd, a.service.ListAccounts())
		},
	}
}

func newCatalogCommand(logger *logrus.Entry) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog maintenance",
	}

	cfg := excel.DefaultImportConfig()
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Check an Excel or CSV file of study items and report what would be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.FilePath = args[0]
			result, err := excel.ImportItems(cfg)
			if err != nil {
				return err
			}
			for _, msg := range result.Errors {
				logger.WithField("file", cfg.FilePath).Warn(msg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed: %d, Imported: %d, Skipped: %d, Errors: %d\n",
				result.TotalProcessed, len(result.Items), result.Skipped, len(result.Errors))
			return nil
		},
	}
	importCmd.Flags().StringVar(&cfg.SheetName, "sheet", "", "sheet to read (default: first sheet)")
	importCmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "first data row, 1-based")

	catalogCmd.AddCommand(importCmd)
	return catalogCmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
