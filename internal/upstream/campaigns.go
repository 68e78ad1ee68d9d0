package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// ListOptions filter a campaign listing.
type ListOptions struct {
	Status   CampaignStatus
	Search   string
	Sort     string
	Page     int
	PageSize int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("limit", strconv.Itoa(o.PageSize))
	}
	return q
}

// ListCampaigns lists or searches public campaigns.
func (c *Client) ListCampaigns(ctx context.Context, opts ListOptions) (*CampaignPage, error) {
	var page CampaignPage
	err := c.public(ctx, request{
		method: http.MethodGet,
		path:   "campaigns",
		query:  opts.values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCampaign fetches one campaign by id. When the id lookup 404s the value is
// treated as a slug and resolved through search, matching how campaign links
// are shared publicly.
func (c *Client) GetCampaign(ctx context.Context, slugOrID string) (*Campaign, error) {
	var campaign Campaign
	err := c.public(ctx, request{
		method: http.MethodGet,
		path:   "campaigns/" + url.PathEscape(slugOrID),
	}, &campaign)
	if err == nil {
		return &campaign, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	page, err := c.ListCampaigns(ctx, ListOptions{Search: slugOrID})
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		if page.Items[i].Slug == slugOrID {
			return &page.Items[i], nil
		}
	}
	return nil, ErrNotFound
}

// MyCampaigns lists the authenticated beneficiary's campaigns.
func (c *Client) MyCampaigns(ctx context.Context, ts TokenSource) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "campaigns/my"}, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// AdminListCampaigns lists all campaigns for moderation.
func (c *Client) AdminListCampaigns(ctx context.Context, ts TokenSource, opts ListOptions) (*CampaignPage, error) {
	var page CampaignPage
	err := c.authed(ctx, ts, request{
		method: http.MethodGet,
		path:   "campaigns/admin/all",
		query:  opts.values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// AdminGetCampaign fetches one campaign for moderation.
func (c *Client) AdminGetCampaign(ctx context.Context, ts TokenSource, id string) (*Campaign, error) {
	var campaign Campaign
	err := c.authed(ctx, ts, request{
		method: http.MethodGet,
		path:   "campaigns/admin/" + url.PathEscape(id),
	}, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// VerifyCampaign approves a pending campaign.
func (c *Client) VerifyCampaign(ctx context.Context, ts TokenSource, id string) error {
	return c.authed(ctx, ts, request{
		method: http.MethodPatch,
		path:   "campaigns/" + url.PathEscape(id) + "/verify",
	}, nil)
}

// RejectCampaign rejects a pending campaign.
func (c *Client) RejectCampaign(ctx context.Context, ts TokenSource, id, reason string) error {
	req := request{
		method: http.MethodPatch,
		path:   "campaigns/" + url.PathEscape(id) + "/reject",
	}
	if reason != "" {
		req.json = map[string]string{"reason": reason}
	}
	return c.authed(ctx, ts, req, nil)
}

// CreateCampaign submits a new campaign. A 409 maps to ErrSlugTaken.
func (c *Client) CreateCampaign(ctx context.Context, ts TokenSource, input CampaignInput) (*Campaign, error) {
	var campaign Campaign
	err := c.authed(ctx, ts, request{
		method: http.MethodPost,
		path:   "campaigns",
		json:   input,
	}, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// UpdateCampaign edits an existing campaign.
func (c *Client) UpdateCampaign(ctx context.Context, ts TokenSource, id string, input CampaignInput) (*Campaign, error) {
	var campaign Campaign
	err := c.authed(ctx, ts, request{
		method: http.MethodPatch,
		path:   "campaigns/" + url.PathEscape(id),
		json:   input,
	}, &campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ImageFile is one image queued for upload.
type ImageFile struct {
	Name    string
	Content []byte
}

type uploadResult struct {
	URLs []string `json:"urls"`
}

// UploadImages sends the images as one multipart request under the field name
// the upstream expects, optionally tying them to an existing campaign. The
// progress callback receives bytes sent out of total; it may be nil.
func (c *Client) UploadImages(ctx context.Context, ts TokenSource, campaignID string, files []ImageFile, progress func(sent, total int64)) ([]string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := writer.CreateFormFile("images", file.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("write form file: %w", err)
		}
	}
	if campaignID != "" {
		if err := writer.WriteField("campaignId", campaignID); err != nil {
			return nil, fmt.Errorf("write campaign id field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	body := buf.Bytes()
	if progress != nil {
		// Buffered upload: report completion in two ticks so callers can
		// render determinate progress.
		progress(0, int64(len(body)))
		defer progress(int64(len(body)), int64(len(body)))
	}

	var result uploadResult
	err := c.authed(ctx, ts, request{
		method:      http.MethodPost,
		path:        "campaigns/images/upload",
		raw:         body,
		contentType: writer.FormDataContentType(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.URLs, nil
}

// GetCommissionRates fetches the public fee rates.
func (c *Client) GetCommissionRates(ctx context.Context) (*CommissionRates, error) {
	var rates CommissionRates
	err := c.public(ctx, request{
		method: http.MethodGet,
		path:   "campaigns/commission-rates",
	}, &rates)
	if err != nil {
		return nil, err
	}
	return &rates, nil
}
