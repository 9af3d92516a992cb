package main

func taskEmptyListMessage(total int, includeAll bool, hasCompleted bool) string {
	if total == 0 {
		return "No tasks found."
	}
	if !includeAll && hasCompleted {
		return "No open tasks found. Use --all to include completed tasks."
	}
	return "No tasks found."
}

func sessionEmptyListMessage(total int, since string) string {
	if total == 0 || since == "" {
		return "No sessions found."
	}
	return "No sessions found since " + since + "."
}
