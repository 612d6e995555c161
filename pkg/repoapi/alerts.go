package repoapi

import (
	"context"
	"fmt"
	"net/http"
)

// GetSearchAlerts gets the signed-in user's search alerts
func (c *Client) GetSearchAlerts(ctx context.Context) (alerts []SearchAlert, err error) {
	err = c.request(ctx, http.MethodGet, searchAlertsPath, nil, nil, &alerts)
	return
}

// CreateSearchAlert saves a new search alert
func (c *Client) CreateSearchAlert(ctx context.Context, a SearchAlertRequest) (alert SearchAlert, err error) {
	err = c.request(ctx, http.MethodPost, searchAlertsPath, nil, a, &alert)
	return
}

// DeleteSearchAlert deletes the search alert with the given ID
func (c *Client) DeleteSearchAlert(ctx context.Context, ID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf(searchAlertPathTmpl, ID), nil, nil, nil)
}

// GetSearchAlertOffers gets the offers matching the search alert with the given ID
func (c *Client) GetSearchAlertOffers(ctx context.Context, ID int64) (offers OfferPartition, err error) {
	err = c.request(ctx, http.MethodGet, fmt.Sprintf(searchAlertOffersTmpl, ID), nil, nil, &offers)
	return
}
