package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"causajusta/internal/campaign"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// ProfileHandler handles profile reads, updates and picture upload.
type ProfileHandler struct {
	client   *upstream.Client
	sessions *session.Store
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(client *upstream.Client, sessions *session.Store) *ProfileHandler {
	return &ProfileHandler{client: client, sessions: sessions}
}

// ProfileUpdateRequest represents a profile edit.
type ProfileUpdateRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Address  string `json:"address"`
}

func (r ProfileUpdateRequest) update() upstream.ProfileUpdate {
	return upstream.ProfileUpdate{
		Name:     r.Name,
		Phone:    r.Phone,
		Location: r.Location,
		Bio:      r.Bio,
		Address:  r.Address,
	}
}

// Get godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} upstream.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, _ := session.Current(c)
	profile, err := h.client.GetProfile(c.Request().Context(), h.sessions.Source(sess.ID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update the shared profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} upstream.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	return h.patch(c, func(ctx echo.Context, ts upstream.TokenSource, update upstream.ProfileUpdate) (*upstream.Profile, error) {
		return h.client.UpdateProfile(ctx.Request().Context(), ts, update)
	})
}

// UpdateBeneficiary godoc
// @Summary Update beneficiary profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} upstream.Profile
// @Failure 403 {object} errors.ErrorResponse
// @Router /profile/beneficiary [patch]
func (h *ProfileHandler) UpdateBeneficiary(c echo.Context) error {
	return h.patch(c, func(ctx echo.Context, ts upstream.TokenSource, update upstream.ProfileUpdate) (*upstream.Profile, error) {
		return h.client.UpdateBeneficiaryProfile(ctx.Request().Context(), ts, update)
	})
}

// UpdateDonor godoc
// @Summary Update donor profile fields
// @Tags profile
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} upstream.Profile
// @Failure 403 {object} errors.ErrorResponse
// @Router /profile/donor [patch]
func (h *ProfileHandler) UpdateDonor(c echo.Context) error {
	return h.patch(c, func(ctx echo.Context, ts upstream.TokenSource, update upstream.ProfileUpdate) (*upstream.Profile, error) {
		return h.client.UpdateDonorProfile(ctx.Request().Context(), ts, update)
	})
}

func (h *ProfileHandler) patch(c echo.Context, call func(echo.Context, upstream.TokenSource, upstream.ProfileUpdate) (*upstream.Profile, error)) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := call(c, h.sessions.Source(sess.ID), req.update())
	if err != nil {
		return httpError(err)
	}

	// Keep the session mirror in step with what the upstream accepted.
	if err := h.sessions.SetUser(c.Request().Context(), sess.ID, profile.User); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UploadPicture godoc
// @Summary Replace the profile picture
// @Tags profile
// @Accept mpfd
// @Produce json
// @Param picture formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile/picture [post]
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	header, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no picture in request")
	}
	meta := campaign.ImageMeta{
		Name: header.Filename,
		Size: header.Size,
		MIME: header.Header.Get("Content-Type"),
	}
	if err := campaign.ValidateImages(0, []campaign.ImageMeta{meta}); err != nil {
		return httpError(err)
	}

	src, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable picture")
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable picture")
	}

	url, err := h.client.UploadProfilePicture(c.Request().Context(), h.sessions.Source(sess.ID), header.Filename, content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
