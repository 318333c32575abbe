package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/bwise1/court_cases/internal/model"
	"github.com/jackc/pgx/v5"
)

const caseColumns = `id, defendant_name, plaintiff_name, argument, evidence, status, submitted_by, created_at`

func scanCase(row pgx.Row) (model.Case, error) {
	var (
		c      model.Case
		status string
	)
	err := row.Scan(
		&c.ID, &c.DefendantName, &c.PlaintiffName, &c.Argument,
		&c.Evidence, &status, &c.SubmittedBy, &c.CreatedAt,
	)
	if err != nil {
		return model.Case{}, err
	}
	c.Status = model.CaseStatus(status)
	return c, nil
}

func collectCases(rows pgx.Rows) ([]model.Case, error) {
	defer rows.Close()

	cases := []model.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (api *API) CreateCaseRepo(ctx context.Context, c model.Case) (int64, error) {
	stmt := `
        INSERT INTO cases (
            defendant_name, plaintiff_name, argument, evidence,
            status, submitted_by, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int64
	err := api.DB.QueryRow(ctx, stmt,
		c.DefendantName, c.PlaintiffName, c.Argument, c.Evidence,
		string(c.Status), c.SubmittedBy, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create case: %w", err)
	}
	return id, nil
}

func (api *API) GetAllCasesRepo(ctx context.Context) ([]model.Case, error) {
	stmt := `SELECT ` + caseColumns + ` FROM cases ORDER BY id`

	rows, err := api.DB.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return collectCases(rows)
}

// SearchCasesByNameRepo matches pattern, an already lower-cased LIKE
// pattern, against both party names.
func (api *API) SearchCasesByNameRepo(ctx context.Context, pattern string) ([]model.Case, error) {
	stmt := `SELECT ` + caseColumns + ` FROM cases
        WHERE LOWER(defendant_name) LIKE $1 ESCAPE '\'
           OR LOWER(plaintiff_name) LIKE $1 ESCAPE '\'
        ORDER BY id`

	rows, err := api.DB.Query(ctx, stmt, pattern)
	if err != nil {
		return nil, fmt.Errorf("search cases: %w", err)
	}
	return collectCases(rows)
}

func (api *API) CaseExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM cases WHERE id = $1)`

	if err := api.DB.QueryRow(ctx, stmt, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check case %d: %w", id, err)
	}
	return exists, nil
}

// UpdateCaseRepo overwrites the non-nil fields of req. It returns
// pgx.ErrNoRows (wrapped) when the case does not exist.
func (api *API) UpdateCaseRepo(ctx context.Context, id int64, req model.UpdateCaseRequest) (model.Case, error) {
	stmt := `
        UPDATE cases
        SET argument = COALESCE($1, argument),
            evidence = COALESCE($2, evidence)
        WHERE id = $3
        RETURNING ` + caseColumns

	c, err := scanCase(api.DB.QueryRow(ctx, stmt, req.Argument, req.Evidence, id))
	if err != nil {
		return model.Case{}, fmt.Errorf("update case %d: %w", id, err)
	}
	return c, nil
}

// SetCaseStatusRepo returns pgx.ErrNoRows (wrapped) when the case does not
// exist.
func (api *API) SetCaseStatusRepo(ctx context.Context, id int64, status model.CaseStatus) (model.Case, error) {
	stmt := `UPDATE cases SET status = $1 WHERE id = $2 RETURNING ` + caseColumns

	c, err := scanCase(api.DB.QueryRow(ctx, stmt, string(status), id))
	if err != nil {
		return model.Case{}, fmt.Errorf("set case %d status: %w", id, err)
	}
	return c, nil
}

// DeleteCaseRepo removes a case together with the votes cast on it and
// reports how many votes went with it. It returns pgx.ErrNoRows (wrapped)
// when the case does not exist, leaving votes untouched.
func (api *API) DeleteCaseRepo(ctx context.Context, id int64) (int64, error) {
	var removedVotes int64

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM votes WHERE case_id = $1`, id)
		if err != nil {
			return err
		}
		removedVotes = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete case %d: %w", id, err)
	}
	return removedVotes, nil
}

func newPendingCase(req model.SubmitCaseRequest, submittedBy string) model.Case {
	return model.Case{
		DefendantName: req.DefendantName,
		PlaintiffName: req.PlaintiffName,
		Argument:      req.Argument,
		Evidence:      req.Evidence,
		Status:        model.StatusPending,
		SubmittedBy:   submittedBy,
		CreatedAt:     time.Now().UTC(),
	}
}
