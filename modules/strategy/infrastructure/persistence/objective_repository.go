package persistence

import (
	"fmt"

	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

var (
	ErrObjectiveNotFound = fmt.Errorf("objective not found")
)

const (
	objectiveFindQuery = `
		SELECT id, tenant_id, title, description, level, team_id, parent_id, quarter, year,
		       progress, progress_mode, status, goal_type, phased_targets, owner_email,
		       placeholder, created_at, updated_at
		FROM objectives`
)

type ObjectiveRepository struct{}

func NewObjectiveRepository() objective.Repository {
	return &ObjectiveRepository{}
}

func (r *ObjectiveRepository) Count(ctx context.Context) (int64, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM objectives WHERE tenant_id = $1`, tenantID.String()).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count objectives")
	}
	return count, nil
}

func (r *ObjectiveRepository) GetAll(ctx context.Context) ([]*objective.Objective, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryObjectives(ctx, objectiveFindQuery+" WHERE tenant_id = $1 ORDER BY level, title", tenantID.String())
}

func (r *ObjectiveRepository) GetPaginated(ctx context.Context, params *objective.FindParams) ([]*objective.Objective, error) {
	if params == nil {
		params = &objective.FindParams{}
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	query := objectiveFindQuery + " WHERE tenant_id = $1"
	args := []any{tenantID.String()}
	if params.Year != 0 {
		args = append(args, params.Year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if params.Quarter != nil {
		args = append(args, *params.Quarter)
		query += fmt.Sprintf(" AND quarter = $%d", len(args))
	}
	if params.TeamID != nil {
		args = append(args, params.TeamID.String())
		query += fmt.Sprintf(" AND team_id = $%d", len(args))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY level, title LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryObjectives(ctx, query, args...)
}

func (r *ObjectiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*objective.Objective, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryObjectives(ctx, objectiveFindQuery+" WHERE tenant_id = $1 AND id = $2", tenantID.String(), id.String())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrObjectiveNotFound
	}
	return rows[0], nil
}

func (r *ObjectiveRepository) GetByTitle(ctx context.Context, title string) (*objective.Objective, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryObjectives(ctx, objectiveFindQuery+" WHERE tenant_id = $1 AND title = $2", tenantID.String(), title)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrObjectiveNotFound
	}
	return rows[0], nil
}

func (r *ObjectiveRepository) Create(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO objectives (
			id, tenant_id, title, description, level, team_id, parent_id, quarter, year,
			progress, progress_mode, status, goal_type, phased_targets, owner_email,
			placeholder, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.ID().String(),
		data.TenantID().String(),
		data.Title(),
		mapping.ValueToSQLNullString(data.Description()),
		data.Level(),
		mapping.UUIDToSQLNullString(data.TeamID()),
		mapping.UUIDToSQLNullString(data.ParentID()),
		mapping.PointerToSQLNullInt32(data.Quarter()),
		data.Year(),
		data.Progress(),
		string(data.ProgressMode()),
		string(data.Status()),
		string(data.GoalType()),
		mapping.ValueToSQLNullString(string(data.PhasedTargets())),
		mapping.ValueToSQLNullString(data.OwnerEmail()),
		data.IsPlaceholder(),
		data.CreatedAt(),
		data.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, errors.Wrap(err, "failed to insert objective")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ObjectiveRepository) Update(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE objectives
		SET title = $1, description = $2, level = $3, team_id = $4, parent_id = $5,
		    quarter = $6, year = $7, progress = $8, progress_mode = $9, status = $10,
		    goal_type = $11, phased_targets = $12, owner_email = $13, placeholder = $14,
		    updated_at = $15
		WHERE tenant_id = $16 AND id = $17
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.Title(),
		mapping.ValueToSQLNullString(data.Description()),
		data.Level(),
		mapping.UUIDToSQLNullString(data.TeamID()),
		mapping.UUIDToSQLNullString(data.ParentID()),
		mapping.PointerToSQLNullInt32(data.Quarter()),
		data.Year(),
		data.Progress(),
		string(data.ProgressMode()),
		string(data.Status()),
		string(data.GoalType()),
		mapping.ValueToSQLNullString(string(data.PhasedTargets())),
		mapping.ValueToSQLNullString(data.OwnerEmail()),
		data.IsPlaceholder(),
		data.UpdatedAt(),
		data.TenantID().String(),
		data.ID().String(),
	).Scan(&idStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrObjectiveNotFound
		}
		return nil, errors.Wrap(err, "failed to update objective")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ObjectiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM objectives WHERE tenant_id = $1 AND id = $2`, tenantID.String(), id.String())
	return err
}

func (r *ObjectiveRepository) queryObjectives(ctx context.Context, query string, args ...any) ([]*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var objectives []*objective.Objective
	for rows.Next() {
		var row models.Objective
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.Title,
			&row.Description,
			&row.Level,
			&row.TeamID,
			&row.ParentID,
			&row.Quarter,
			&row.Year,
			&row.Progress,
			&row.ProgressMode,
			&row.Status,
			&row.GoalType,
			&row.PhasedTargets,
			&row.OwnerEmail,
			&row.Placeholder,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan objective row")
		}
		entity, err := toDomainObjective(&row)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return objectives, nil
}
