package repoapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// OfferQuery represents the parameters of an offer search
type OfferQuery struct {
	Origin      Selection
	Destination Selection
	ELD         time.Time // earliest loading date
	LLD         time.Time // latest loading date
}

// values encodes the query as `origin_<type>_id=&destination_<type>_id=&start_loading_on=&end_loading_on=`
func (q OfferQuery) values() url.Values {
	v := url.Values{}
	v.Set(fmt.Sprintf(originParamTemplate, strings.ToLower(q.Origin.Type)), strconv.FormatInt(q.Origin.ID, 10))
	v.Set(fmt.Sprintf(destinationParamTmpl, strings.ToLower(q.Destination.Type)), strconv.FormatInt(q.Destination.ID, 10))
	v.Set(startLoadingOnParam, NewTime(q.ELD).ISO())
	v.Set(endLoadingOnParam, NewTime(q.LLD).ISO())
	return v
}

// SearchOffers searches the offers matching the given query
func (c *Client) SearchOffers(ctx context.Context, q OfferQuery) (offers OfferPartition, err error) {
	err = c.request(ctx, http.MethodGet, offersPath, q.values(), nil, &offers)
	return
}

// GetMyOffers gets the offers published by the signed-in user
func (c *Client) GetMyOffers(ctx context.Context) (offers []Offer, err error) {
	err = c.request(ctx, http.MethodGet, myOffersPath, nil, nil, &offers)
	return
}

// GetOffer gets the offer with the given ID
func (c *Client) GetOffer(ctx context.Context, ID int64) (offer Offer, err error) {
	err = c.request(ctx, http.MethodGet, fmt.Sprintf(offerPathTemplate, ID), nil, nil, &offer)
	return
}

// CreateOffer publishes a new offer
func (c *Client) CreateOffer(ctx context.Context, o OfferRequest) (offer Offer, err error) {
	o.ID = 0
	err = c.request(ctx, http.MethodPost, createOfferPath, nil, o, &offer)
	return
}

// UpdateOffer updates the offer with the given ID
func (c *Client) UpdateOffer(ctx context.Context, ID int64, o OfferRequest) (offer Offer, err error) {
	o.ID = ID
	err = c.request(ctx, http.MethodPut, fmt.Sprintf(offerPathTemplate, ID), nil, o, &offer)
	return
}

// DeleteOffer deletes the offer with the given ID
func (c *Client) DeleteOffer(ctx context.Context, ID int64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf(offerPathTemplate, ID), nil, nil, nil)
}

// CreateInquiry sends an inquiry to the publisher of an offer
func (c *Client) CreateInquiry(ctx context.Context, i Inquiry) error {
	return c.request(ctx, http.MethodPost, inquiriesPath, nil, i, nil)
}
