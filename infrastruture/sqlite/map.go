package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/jmoiron/sqlx"
)

type mapRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	GridSize    int    `db:"grid_size"`
	RiskJSON    string `db:"risk_json"`
	AnimalJSON  string `db:"animal_json"`
	TerrainJSON string `db:"terrain_json"`
	CreatedAt   int64  `db:"created_at"`
}

func (r mapRow) toMap() (*dmn.Map, error) {
	m := &dmn.Map{
		ID:        r.ID,
		Name:      r.Name,
		GridSize:  r.GridSize,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
	if r.RiskJSON == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(r.RiskJSON), &m.RiskMap); err != nil {
		return nil, fmt.Errorf("decode risk map: %w", err)
	}
	if err := json.Unmarshal([]byte(r.AnimalJSON), &m.AnimalMap); err != nil {
		return nil, fmt.Errorf("decode animal map: %w", err)
	}
	if err := json.Unmarshal([]byte(r.TerrainJSON), &m.TerrainMap); err != nil {
		return nil, fmt.Errorf("decode terrain map: %w", err)
	}
	return m, nil
}

// MapRepo persists maps as rows with JSON matrix columns.
type MapRepo struct {
	conn *sqlx.DB
}

func (r *MapRepo) Save(ctx context.Context, m *dmn.Map) error {
	risk, err := json.Marshal(m.RiskMap)
	if err != nil {
		return err
	}
	animal, err := json.Marshal(m.AnimalMap)
	if err != nil {
		return err
	}
	terrain, err := json.Marshal(m.TerrainMap)
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO maps (id, name, grid_size, risk_json, animal_json, terrain_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.GridSize, string(risk), string(animal), string(terrain), m.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save map: %w", err)
	}
	return nil
}

func (r *MapRepo) ByID(ctx context.Context, id string) (*dmn.Map, error) {
	var row mapRow
	err := r.conn.GetContext(ctx, &row, "SELECT * FROM maps WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, i.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	return row.toMap()
}

// All lists maps newest first without their matrices.
func (r *MapRepo) All(ctx context.Context) ([]*dmn.Map, error) {
	var rows []mapRow
	err := r.conn.SelectContext(ctx, &rows,
		"SELECT id, name, grid_size, created_at FROM maps ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}

	maps := make([]*dmn.Map, 0, len(rows))
	for _, row := range rows {
		m, err := row.toMap()
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, nil
}
