package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/planbook/internal/cli"
	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/pipeline"
	"github.com/theirongolddev/planbook/internal/tasks"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	flagTaskCategory string
	flagTaskPriority string
	flagTaskDate     string
	flagTaskFilter   string
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Plan and complete tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task done, or reopen it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskToggle,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Find tasks by text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskSearch,
}

func init() {
	taskAddCmd.Flags().StringVarP(&flagTaskCategory, "category", "c", string(model.TaskOther), "work, home, health, learning or other")
	taskAddCmd.Flags().StringVarP(&flagTaskPriority, "priority", "p", string(model.PriorityMedium), "high, medium or low")
	taskAddCmd.Flags().StringVar(&flagTaskDate, "date", "", "Date as YYYY-MM-DD (default today)")
	taskListCmd.Flags().StringVarP(&flagTaskFilter, "filter", "f", "all", "all, active, completed or today")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskToggleCmd, taskDeleteCmd, taskSearchCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(_ *cobra.Command, args []string) error {
	category, err := model.ParseTaskCategory(flagTaskCategory)
	if err != nil {
		return err
	}
	priority, err := model.ParsePriority(flagTaskPriority)
	if err != nil {
		return err
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	_, err = ws.Tasks.AddTask(tasks.TaskInput{
		Text:     strings.Join(args, " "),
		Category: category,
		Priority: priority,
		Date:     model.Date(flagTaskDate),
	})
	return err
}

func runTaskList(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	filter := pipeline.ParseTaskFilter(flagTaskFilter)
	printTasks(fmt.Sprintf("Tasks (%s)", filter), ws.Tasks.FilterTasks(filter), ws.Tasks.Today())
	return nil
}

func runTaskSearch(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	query := strings.Join(args, " ")
	printTasks(fmt.Sprintf("Tasks matching %q", query), ws.Tasks.SearchTasks(query), ws.Tasks.Today())
	return nil
}

func printTasks(title string, list []model.Task, today model.Date) {
	if len(list) == 0 {
		fmt.Println("\n  No tasks found.")
		return
	}
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		check := "[ ]"
		text := t.Text
		if t.Completed {
			check = "[x]"
			text = cli.MutedStyle.Render(text)
		}
		date := cli.FormatDate(t.Date)
		if t.Date == today {
			date = "Today"
		}
		priority := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Priority.Color())).Render(string(t.Priority))
		rows = append(rows, []string{shortID(t.ID), check, text, string(t.Category), priority, date})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:       title,
		Headers:     []string{"ID", "", "Task", "Category", "Priority", "Date"},
		Rows:        rows,
		LeftAligned: []bool{true, true, true, true, true, false},
	}))
}

func taskID(m *tasks.Manager, prefix string) (string, error) {
	list := m.Tasks()
	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.ID
	}
	return resolveID("task", prefix, ids)
}

func runTaskToggle(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := taskID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	ws.Tasks.ToggleTask(id)
	return nil
}

func runTaskDelete(_ *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer closeWorkspace(ws)

	id, err := taskID(ws.Tasks, args[0])
	if err != nil {
		return err
	}
	ws.Tasks.DeleteTask(id)
	return nil
}
