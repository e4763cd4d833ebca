// Package taskspgxstore implements the tasksrepo.Storer interface against
// PostgreSQL. List-shaped columns (assignees, checklist, attachments) are
// stored as jsonb so ordering survives round trips.
package taskspgxstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tasktide/tasktide/core/repositories"
	"github.com/tasktide/tasktide/core/repositories/tasksrepo"
	"github.com/tasktide/tasktide/core/scaffolding/fop"
	"github.com/tasktide/tasktide/infrastructure/postgresdb"
	"github.com/tasktide/tasktide/sdk/logger"
)

const taskColumns = `task_id, title, description, priority, status, progress,
	due_date, assigned_to, todo_checklist, attachments, created_by,
	created_at, updated_at`

// groupFields whitelists the fields GroupCount may aggregate on.
var groupFields = map[string]bool{
	"status":   true,
	"priority": true,
}

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (@task_id, @title, @description, @priority, @status, @progress,
			@due_date, @assigned_to, @todo_checklist, @attachments, @created_by,
			@created_at, @updated_at)`

	if _, err := s.pool.Exec(ctx, query, taskArgs(task)); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return task, nil
}

func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	query := `UPDATE tasks SET
			title = @title,
			description = @description,
			priority = @priority,
			status = @status,
			progress = @progress,
			due_date = @due_date,
			assigned_to = @assigned_to,
			todo_checklist = @todo_checklist,
			attachments = @attachments,
			updated_at = @updated_at
		WHERE task_id = @task_id`

	tag, err := s.pool.Exec(ctx, query, taskArgs(task))
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id": taskID,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) List(ctx context.Context, filter tasksrepo.TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]tasksrepo.Task, error) {
	buf := bytes.NewBufferString("SELECT " + taskColumns + " FROM tasks")
	args := pgx.NamedArgs{}

	applyFilter(buf, args, filter)

	if page.Cursor != "" {
		cursor, err := fop.DecodeCursor[string, time.Time](page.Cursor)
		if err != nil {
			return nil, fmt.Errorf("list tasks cursor: %w", err)
		}
		applyCursor(buf, args, orderBy, cursor)
	}

	if err := postgresdb.AddOrderByClause(buf, orderBy.Field, "task_id", orderBy.Direction); err != nil {
		return nil, fmt.Errorf("list tasks order: %w", err)
	}

	if page.Limit > 0 {
		postgresdb.AddLimitClause(page.Limit, args, buf)
	}

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.TaskFilter) (int, error) {
	buf := bytes.NewBufferString("SELECT COUNT(*) FROM tasks")
	args := pgx.NamedArgs{}

	applyFilter(buf, args, filter)

	var count int
	if err := s.pool.QueryRow(ctx, buf.String(), args).Scan(&count); err != nil {
		return 0, postgresdb.HandlePgError(err)
	}

	return count, nil
}

func (s *Store) GroupCount(ctx context.Context, filter tasksrepo.TaskFilter, field string) (map[string]int, error) {
	if !groupFields[field] {
		return nil, fmt.Errorf("unsupported group field: %s", field)
	}

	quoted, err := postgresdb.QuoteIdentifier(field)
	if err != nil {
		return nil, fmt.Errorf("group count field: %w", err)
	}

	buf := bytes.NewBufferString(fmt.Sprintf("SELECT %s, COUNT(*) FROM tasks", quoted))
	args := pgx.NamedArgs{}

	applyFilter(buf, args, filter)

	buf.WriteString(fmt.Sprintf(" GROUP BY %s", quoted))

	rows, err := s.pool.Query(ctx, buf.String(), args)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, postgresdb.HandlePgError(err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return counts, nil
}

// taskArgs binds every task column; the same set serves insert and update.
func taskArgs(task tasksrepo.Task) pgx.NamedArgs {
	return pgx.NamedArgs{
		"task_id":        task.TaskID,
		"title":          task.Title,
		"description":    task.Description,
		"priority":       task.Priority,
		"status":         task.Status,
		"progress":       task.Progress,
		"due_date":       task.DueDate,
		"assigned_to":    jsonList(task.AssignedTo),
		"todo_checklist": checklistJSON(task.TodoChecklist),
		"attachments":    jsonList(task.Attachments),
		"created_by":     task.CreatedBy,
		"created_at":     task.CreatedAt,
		"updated_at":     task.UpdatedAt,
	}
}

// jsonList keeps jsonb columns as [] rather than null for absent lists.
func jsonList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func checklistJSON(items []tasksrepo.ChecklistItem) []tasksrepo.ChecklistItem {
	if items == nil {
		return []tasksrepo.ChecklistItem{}
	}
	return items
}

func applyFilter(buf *bytes.Buffer, args pgx.NamedArgs, filter tasksrepo.TaskFilter) {
	var clauses []string

	if filter.Status != nil {
		clauses = append(clauses, "status = @status")
		args["status"] = *filter.Status
	}
	if filter.NotStatus != nil {
		clauses = append(clauses, "status <> @not_status")
		args["not_status"] = *filter.NotStatus
	}
	if filter.AssignedTo != nil {
		// jsonb containment: the assignee list holds plain id strings.
		clauses = append(clauses, "assigned_to @> to_jsonb(@assigned_user::text)")
		args["assigned_user"] = *filter.AssignedTo
	}
	if filter.DueBefore != nil {
		clauses = append(clauses, "due_date < @due_before")
		args["due_before"] = *filter.DueBefore
	}

	for i, clause := range clauses {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(clause)
	}
}

// applyCursor adds a row-comparison keyset condition matching the order
// clause AddOrderByClause builds.
func applyCursor(buf *bytes.Buffer, args pgx.NamedArgs, orderBy fop.By, cursor *fop.Cursor[string, time.Time]) {
	if cursor == nil {
		return
	}

	op := ">"
	if orderBy.Direction == postgresdb.DESC {
		op = "<"
	}

	if len(args) == 0 {
		buf.WriteString(" WHERE ")
	} else {
		buf.WriteString(" AND ")
	}

	fmt.Fprintf(buf, "(created_at, task_id) %s (@cursor_order_value, @cursor_pk)", op)
	args["cursor_order_value"] = cursor.OrderValue
	args["cursor_pk"] = cursor.PK
}
