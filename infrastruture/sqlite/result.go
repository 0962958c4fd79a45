package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/jmoiron/sqlx"
)

// ResultRepo persists results as JSON documents keyed by ID and map.
type ResultRepo struct {
	conn *sqlx.DB
}

func (r *ResultRepo) Save(ctx context.Context, result *dmn.Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx,
		"INSERT INTO results (id, map_id, risk_reduction, body_json, created_at) VALUES (?, ?, ?, ?, ?)",
		result.ID, result.MapID, result.Stats.RiskReduction, string(body), result.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *ResultRepo) ByID(ctx context.Context, id string) (*dmn.Result, error) {
	var body string
	err := r.conn.GetContext(ctx, &body, "SELECT body_json FROM results WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, i.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	return decodeResult(body)
}

// ByMap returns the results of a map, best risk reduction first.
func (r *ResultRepo) ByMap(ctx context.Context, mapID string) ([]*dmn.Result, error) {
	var bodies []string
	err := r.conn.SelectContext(ctx, &bodies,
		"SELECT body_json FROM results WHERE map_id = ? ORDER BY risk_reduction DESC, created_at ASC",
		mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	results := make([]*dmn.Result, 0, len(bodies))
	for _, body := range bodies {
		result, err := decodeResult(body)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func decodeResult(body string) (*dmn.Result, error) {
	var result dmn.Result
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &result, nil
}
