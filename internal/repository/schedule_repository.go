package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushub/course-planner-api/internal/models"
)

// ScheduleRepository persists saved student schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = "id, student_id, term_id, name, status, score, created_at, updated_at"
const entryColumns = "id, schedule_id, course_id, section_id, position, created_at"

// Create stores a schedule and its entries in one transaction.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.StudentSchedule, entries []models.ScheduleEntry) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusDraft
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save schedule: %w", err)
	}
	defer tx.Rollback()

	const insertSchedule = `INSERT INTO student_schedules (id, student_id, term_id, name, status, score, created_at, updated_at) VALUES (:id, :student_id, :term_id, :name, :status, :score, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertSchedule, schedule); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	const insertEntry = `INSERT INTO schedule_entries (id, schedule_id, course_id, section_id, position, created_at) VALUES (:id, :schedule_id, :course_id, :section_id, :position, :created_at)`
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		entries[i].ScheduleID = schedule.ID
		entries[i].Position = i
		entries[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertEntry, entries[i]); err != nil {
			return fmt.Errorf("insert schedule entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save schedule: %w", err)
	}
	return nil
}

// FindByID loads a schedule header by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.StudentSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM student_schedules WHERE id = $1", scheduleColumns)
	var schedule models.StudentSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Entries returns the entries of a schedule in saved order.
func (r *ScheduleRepository) Entries(ctx context.Context, scheduleID string) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE schedule_id = $1 ORDER BY position ASC", entryColumns)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}

// ListByStudent returns a student's schedules for a term, newest first.
func (r *ScheduleRepository) ListByStudent(ctx context.Context, studentID, termID string) ([]models.StudentSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM student_schedules WHERE student_id = $1 AND term_id = $2 ORDER BY created_at DESC", scheduleColumns)
	var schedules []models.StudentSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, studentID, termID); err != nil {
		return nil, fmt.Errorf("list schedules by student: %w", err)
	}
	return schedules, nil
}

// UpdateStatus transitions a schedule between lifecycle states.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id string, status models.ScheduleStatus) error {
	const query = `UPDATE student_schedules SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule %s not found", id)
	}
	return nil
}

// Delete removes a schedule and its entries.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete schedule: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE schedule_id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM student_schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete schedule: %w", err)
	}
	return nil
}
