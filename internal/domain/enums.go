package domain

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the canonical three-state task lifecycle.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskTodo: true, TaskInProgress: true, TaskDone: true,
}

// LotStatus is free text in the store; these are the values the platform writes.
type LotStatus string

const (
	LotPlanned    LotStatus = "planned"
	LotInProgress LotStatus = "in_progress"
	LotDone       LotStatus = "done"
)
