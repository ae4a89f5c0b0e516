package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/tui"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task that workers can log time against.

Examples:
  tally task add "Payroll export"
  tally task add Quarterly audit --description "Q1 books"`,
	Args: cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		req := db.CreateTaskRequest{Title: strings.Join(args, " ")}
		if cmd.Flags().Changed("description") {
			desc, _ := cmd.Flags().GetString("description")
			req.Description = &desc
		}

		task, err := store.CreateTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("Created task %s: %s", task.ID, task.Title)))
		return nil
	}),
}

var taskListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		tasks, err := store.GetTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching tasks: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTasks(tasks))
		return nil
	}),
}

func init() {
	taskAddCmd.Flags().StringP("description", "d", "", "task description")

	taskCmd.AddCommand(taskAddCmd, taskListCmd)
}
