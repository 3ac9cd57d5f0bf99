package client

import (
	"context"

	"github.com/darmiel/advisor/internal/api"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/service"
)

// Recommend requests a recommendation for the given profile.
func (c *Client) Recommend(ctx context.Context, profile api.ProfilePayload) (*core.Recommendation, string, error) {
	var rec core.Recommendation
	correlation, err := c.post(ctx, c.url().
		setPath(api.RecommendRoute).
		build(), profile, &rec)
	if err != nil {
		return nil, correlation, err
	}
	return &rec, correlation, nil
}

// Explain requests the full evaluation trace for the given profile.
func (c *Client) Explain(ctx context.Context, profile api.ProfilePayload) (*core.EvaluationTrace, string, error) {
	var trace core.EvaluationTrace
	correlation, err := c.post(ctx, c.url().
		setPath(api.ExplainRoute).
		build(), profile, &trace)
	if err != nil {
		return nil, correlation, err
	}
	return &trace, correlation, nil
}

func (c *Client) Catalog(ctx context.Context) (*service.CatalogView, string, error) {
	var view service.CatalogView
	correlation, err := c.get(ctx, c.url().
		setPath(api.CatalogRoute).
		build(), &view)
	if err != nil {
		return nil, correlation, err
	}
	return &view, correlation, nil
}

func (c *Client) Policy(ctx context.Context) (*service.PolicyView, string, error) {
	var view service.PolicyView
	correlation, err := c.get(ctx, c.url().
		setPath(api.PolicyRoute).
		build(), &view)
	if err != nil {
		return nil, correlation, err
	}
	return &view, correlation, nil
}
