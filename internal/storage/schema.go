package storage

import "github.com/BuzzLyutic/task-tracker/internal/model"

// tasksSchema is shared by the SQL sinks. "user" is reserved in Postgres,
// hence the _id suffixes.
const tasksSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER NOT NULL,
	id          TEXT    NOT NULL PRIMARY KEY,
	title       TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	status      TEXT    NOT NULL,
	due_date    TEXT    NOT NULL,
	category_id TEXT    NOT NULL DEFAULT '',
	user_id     TEXT    NOT NULL DEFAULT ''
)`

const selectTasks = `
	SELECT id, title, description, status, due_date, category_id, user_id
	FROM tasks
	ORDER BY position
`

var taskColumns = []string{"position", "id", "title", "description", "status", "due_date", "category_id", "user_id"}

func taskRow(position int, t model.Task) []any {
	return []any{position, t.ID, t.Title, t.Description, t.Status, t.DueDate, t.Category, t.User}
}
