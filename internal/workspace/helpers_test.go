package workspace

import "github.com/theirongolddev/planbook/internal/tasks"

func tasksInput(text string) tasks.TaskInput {
	return tasks.TaskInput{Text: text}
}
