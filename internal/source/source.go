// Package source supplies the budget snapshot an export run reads.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/ynab-export/internal/logger"
	"github.com/mesh-intelligence/ynab-export/internal/ynab"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// Source fetches one complete budget snapshot.
type Source interface {
	Fetch(ctx context.Context) (*types.Budget, error)
}

// API fetches the snapshot from the budgeting service. With an empty
// BudgetID the first budget listed for the token is exported.
type API struct {
	Client   *ynab.Client
	BudgetID string
}

// Fetch implements Source.
func (a *API) Fetch(ctx context.Context) (*types.Budget, error) {
	id := a.BudgetID
	if id == "" {
		first, err := a.Client.FirstBudgetID(ctx)
		if err != nil {
			return nil, err
		}
		id = first
		log := logger.FromContext(ctx)
		log.Debug().Str("budget_id", id).Msg("no budget configured, using the first listed budget")
	}
	return a.Client.Budget(ctx, id)
}

// File reads a snapshot saved to disk. The file holds either the service's
// response envelope ({"data":{"budget":...}}) or a bare budget object.
type File struct {
	Path string
}

// Fetch implements Source.
func (f *File) Fetch(ctx context.Context) (*types.Budget, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	b, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", f.Path, err)
	}
	return b, nil
}

func decodeSnapshot(data []byte) (*types.Budget, error) {
	var probe struct {
		Data *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if probe.Data != nil {
		var envelope struct {
			Budget *types.Budget `json:"budget"`
		}
		if err := json.Unmarshal(*probe.Data, &envelope); err != nil {
			return nil, err
		}
		if envelope.Budget == nil {
			return nil, fmt.Errorf("data has no budget: %w", types.ErrMissingField)
		}
		return envelope.Budget, nil
	}

	var b types.Budget
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
