package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

var (
	ErrTeamNotFound = fmt.Errorf("team not found")
)

const (
	teamFindQuery = `
		SELECT id, tenant_id, name, description, leader_email, created_at, updated_at
		FROM teams`
)

type TeamRepository struct{}

func NewTeamRepository() team.Repository {
	return &TeamRepository{}
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryTeams(ctx, teamFindQuery+" WHERE tenant_id = $1 AND id = $2", tenantID.String(), id.String())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTeamNotFound
	}
	return rows[0], nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*team.Team, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.queryTeams(ctx, teamFindQuery+" WHERE tenant_id = $1 AND name = $2", tenantID.String(), name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTeamNotFound
	}
	return rows[0], nil
}

func (r *TeamRepository) GetAll(ctx context.Context) ([]*team.Team, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.queryTeams(ctx, teamFindQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID.String())
}

func (r *TeamRepository) Create(ctx context.Context, data *team.Team) (*team.Team, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO teams (id, tenant_id, name, description, leader_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.ID().String(),
		data.TenantID().String(),
		data.Name(),
		mapping.PointerToSQLNullString(data.Description()),
		mapping.PointerToSQLNullString(data.LeaderEmail()),
		data.CreatedAt(),
		data.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, errors.Wrap(err, "failed to insert team")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TeamRepository) Update(ctx context.Context, data *team.Team) (*team.Team, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE teams
		SET name = $1, description = $2, leader_email = $3, updated_at = $4
		WHERE tenant_id = $5 AND id = $6
		RETURNING id
	`
	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		data.Name(),
		mapping.PointerToSQLNullString(data.Description()),
		mapping.PointerToSQLNullString(data.LeaderEmail()),
		data.UpdatedAt(),
		data.TenantID().String(),
		data.ID().String(),
	).Scan(&idStr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, errors.Wrap(err, "failed to update team")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM teams WHERE tenant_id = $1 AND id = $2`, tenantID.String(), id.String())
	return err
}

func (r *TeamRepository) queryTeams(ctx context.Context, query string, args ...any) ([]*team.Team, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		var row models.Team
		if err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.Name,
			&row.Description,
			&row.LeaderEmail,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan team row")
		}
		entity, err := toDomainTeam(&row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return teams, nil
}
