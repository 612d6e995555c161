package repoapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GetCompanies gets all shipping lines
func (c *Client) GetCompanies(ctx context.Context) (companies []Company, err error) {
	err = c.request(ctx, http.MethodGet, companiesPath, nil, nil, &companies)
	return
}

// GetCompanyNames gets the names of all shipping lines
func (c *Client) GetCompanyNames(ctx context.Context) ([]string, error) {
	companies, err := c.GetCompanies(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(companies))
	for _, company := range companies {
		names = append(names, company.Name)
	}
	return names, nil
}

// GetLineServices gets all line services (without their stops)
func (c *Client) GetLineServices(ctx context.Context) (services []LineService, err error) {
	err = c.request(ctx, http.MethodGet, lineServicesPath, nil, nil, &services)
	return
}

// GetLineService gets the line service with the given ID, including its stops
func (c *Client) GetLineService(ctx context.Context, ID int64) (service LineService, err error) {
	err = c.request(ctx, http.MethodGet, fmt.Sprintf(lineServicePathTmpl, ID), nil, nil, &service)
	return
}

// SearchLocations gets the locations matching the given keyword
func (c *Client) SearchLocations(ctx context.Context, keyword string) (locations []Location, err error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	err = c.request(ctx, http.MethodGet, locationsPath, url.Values{locationsKeywordParam: {keyword}}, nil, &locations)
	return
}
