package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context, ts TokenSource) (*Profile, error) {
	var profile Profile
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "profile"}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches the shared profile fields.
func (c *Client) UpdateProfile(ctx context.Context, ts TokenSource, update ProfileUpdate) (*Profile, error) {
	return c.patchProfile(ctx, ts, "profile", update)
}

// UpdateBeneficiaryProfile patches the beneficiary-specific profile fields.
func (c *Client) UpdateBeneficiaryProfile(ctx context.Context, ts TokenSource, update ProfileUpdate) (*Profile, error) {
	return c.patchProfile(ctx, ts, "profile/beneficiary", update)
}

// UpdateDonorProfile patches the donor-specific profile fields.
func (c *Client) UpdateDonorProfile(ctx context.Context, ts TokenSource, update ProfileUpdate) (*Profile, error) {
	return c.patchProfile(ctx, ts, "profile/donor", update)
}

func (c *Client) patchProfile(ctx context.Context, ts TokenSource, path string, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	err := c.authed(ctx, ts, request{
		method: http.MethodPatch,
		path:   path,
		json:   update,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type pictureResult struct {
	URL string `json:"url"`
}

// UploadProfilePicture replaces the user's picture and returns the stored URL.
func (c *Client) UploadProfilePicture(ctx context.Context, ts TokenSource, name string, content []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("picture", name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	var result pictureResult
	err = c.authed(ctx, ts, request{
		method:      http.MethodPost,
		path:        "profile/picture",
		raw:         buf.Bytes(),
		contentType: writer.FormDataContentType(),
	}, &result)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}
