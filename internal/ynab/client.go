// Package ynab is a minimal client for the YNAB API: it lists budgets and
// fetches one complete budget snapshot.
package ynab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// ErrNoBudgets is returned when the account has no budget to export.
var ErrNoBudgets = errors.New("no budgets available")

// APIError is an error response from the service.
type APIError struct {
	Status int    `json:"-"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ynab api: %d %s: %s", e.Status, e.Name, e.Detail)
}

// BudgetSummary is one entry of the budget list.
type BudgetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client talks to the YNAB API with a personal access token.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the API at baseURL. The token is sent as a
// bearer credential on every request. A base *http.Client stored in ctx
// under oauth2.HTTPClient is used for transport.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    oauth2.NewClient(ctx, ts),
	}
}

// Budgets lists the budgets visible to the token.
func (c *Client) Budgets(ctx context.Context) ([]BudgetSummary, error) {
	var resp struct {
		Data struct {
			Budgets []BudgetSummary `json:"budgets"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/budgets", &resp); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return resp.Data.Budgets, nil
}

// Budget fetches the full snapshot of one budget. The id may also be
// "last-used" or "default".
func (c *Client) Budget(ctx context.Context, id string) (*types.Budget, error) {
	var resp struct {
		Data struct {
			Budget *types.Budget `json:"budget"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/budgets/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("get budget %s: %w", id, err)
	}
	if resp.Data.Budget == nil {
		return nil, fmt.Errorf("get budget %s: response has no budget: %w", id, types.ErrMissingField)
	}
	return resp.Data.Budget, nil
}

// FirstBudgetID returns the id of the first listed budget.
func (c *Client) FirstBudgetID(ctx context.Context) (string, error) {
	budgets, err := c.Budgets(ctx)
	if err != nil {
		return "", err
	}
	if len(budgets) == 0 {
		return "", ErrNoBudgets
	}
	return budgets[0].ID, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return &APIError{Status: resp.StatusCode, Name: http.StatusText(resp.StatusCode), Detail: strings.TrimSpace(string(body))}
	}
	envelope.Error.Status = resp.StatusCode
	return envelope.Error
}
