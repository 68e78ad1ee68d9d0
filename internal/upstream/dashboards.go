package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// DonationsReceived lists donations received by the authenticated beneficiary.
func (c *Client) DonationsReceived(ctx context.Context, ts TokenSource, page, limit int) (*DonationPage, error) {
	var result DonationPage
	err := c.authed(ctx, ts, request{
		method: http.MethodGet,
		path:   "donations/received",
		query:  pageQuery(page, limit),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DonationsMade lists donations made by the authenticated donor.
func (c *Client) DonationsMade(ctx context.Context, ts TokenSource, page, limit int) (*DonationPage, error) {
	var result DonationPage
	err := c.authed(ctx, ts, request{
		method: http.MethodGet,
		path:   "donations/made",
		query:  pageQuery(page, limit),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PlatformStats fetches the public platform metrics.
func (c *Client) PlatformStats(ctx context.Context) (*PlatformStatistics, error) {
	var stats PlatformStatistics
	if err := c.public(ctx, request{method: http.MethodGet, path: "statistics/platform"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BeneficiaryStats fetches the authenticated beneficiary's metrics.
func (c *Client) BeneficiaryStats(ctx context.Context, ts TokenSource) (*BeneficiaryStatistics, error) {
	var stats BeneficiaryStatistics
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "statistics/beneficiary"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
