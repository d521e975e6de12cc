// todoctl is a thin command line surface over the item service. Backend
// locations come from the environment (REDIS_HOST, ELASTICSEARCH_HOST,
// ...); --offline swaps in the process-local cache and index.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"todocore/batch"
	"todocore/dateparse"
	"todocore/pkg/di"
	"todocore/todo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var offline bool
	var verbose bool
	var container *di.Container

	root := &cobra.Command{
		Use:           "todoctl",
		Short:         "Manage task items backed by Redis and Elasticsearch",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cfg := di.FromEnv()
			cfg.Offline = offline
			c, err := di.NewContainer(cfg, logger)
			if err != nil {
				return err
			}
			container = c
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&offline, "offline", false, "use in-process cache and index instead of Redis/Elasticsearch")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCmd(&container),
		newCreateCmd(&container),
		newGetCmd(&container),
		newUpdateCmd(&container),
		newCompleteCmd(&container),
		newDeleteCmd(&container),
		newSearchCmd(&container),
		newBatchCmd(&container),
	)
	return root
}

func newListCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := (*c).Service().GetAll(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}

func newCreateCmd(c **di.Container) *cobra.Command {
	var description, due string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate := dateparse.Resolve(time.Now(), due)
			item, err := (*c).Service().Create(context.Background(), args[0], description, dueDate)
			if err != nil {
				var idxErr *todo.IndexWriteError
				if item == nil || !errors.As(err, &idxErr) {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			return printJSON(cmd, item)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "item description")
	cmd.Flags().StringVar(&due, "due", "", `due date: YYYY-MM-DD or "today", "tomorrow", "next week"`)
	return cmd
}

func newGetCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := (*c).Service().GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("item %s not found", args[0])
			}
			return printJSON(cmd, item)
		},
	}
}

func newUpdateCmd(c **di.Container) *cobra.Command {
	var title, description, due string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields todo.Fields
			if cmd.Flags().Changed("title") {
				fields.Title = &title
			}
			if cmd.Flags().Changed("description") {
				fields.Description = &description
			}
			if cmd.Flags().Changed("due") {
				resolved := dateparse.Resolve(time.Now(), due)
				fields.DueDate = &resolved
			}
			if fields.Empty() {
				return fmt.Errorf("nothing to update: pass --title, --description or --due")
			}

			item, err := (*c).Service().Update(context.Background(), args[0], fields)
			if err != nil && item == nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("item %s not found", args[0])
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			return printJSON(cmd, item)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date")
	return cmd
}

func newCompleteCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark an item as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := (*c).Service().MarkCompleted(context.Background(), args[0])
			if err != nil && item == nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("item %s not found", args[0])
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			return printJSON(cmd, item)
		},
	}
}

func newDeleteCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := (*c).Service().Delete(context.Background(), args[0])
			if err != nil && !deleted {
				return err
			}
			if !deleted {
				return fmt.Errorf("item %s not found", args[0])
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newSearchCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over titles and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := (*c).Service().Search(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
}

func newBatchCmd(c **di.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <ops.json>",
		Short: "Apply a JSON file of operations, reporting per-operation outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var ops []batch.Op
			if err := json.Unmarshal(raw, &ops); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			results, executed := (*c).Executor().Execute(context.Background(), ops)
			fmt.Fprintf(cmd.ErrOrStderr(), "executed %d operations\n", executed)
			return printJSON(cmd, results)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
