package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"causajusta/internal/campaign"
	"causajusta/internal/service"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// CampaignHandler handles campaign browsing, creation and editing.
type CampaignHandler struct {
	client   *upstream.Client
	sessions *session.Store
	rates    service.RatesService
}

// NewCampaignHandler creates a new campaign handler.
func NewCampaignHandler(client *upstream.Client, sessions *session.Store, rates service.RatesService) *CampaignHandler {
	return &CampaignHandler{client: client, sessions: sessions, rates: rates}
}

// CreateCampaignResponse wraps the created campaign and its fee breakdown.
type CreateCampaignResponse struct {
	Campaign  *upstream.Campaign  `json:"campaign"`
	Breakdown *campaign.Breakdown `json:"breakdown"`
}

// FieldErrorsResponse is returned when form validation fails.
type FieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

// FeeBreakdownResponse narrates a goal amount alongside its fee split.
type FeeBreakdownResponse struct {
	Breakdown campaign.Breakdown `json:"breakdown"`
	Formatted string             `json:"formatted"`
	InWords   string             `json:"inWords"`
}

// Browse godoc
// @Summary List or search public campaigns
// @Tags campaigns
// @Produce json
// @Param status query string false "Campaign status"
// @Param search query string false "Search text"
// @Param sort query string false "Sort order"
// @Param page query int false "Page"
// @Success 200 {object} upstream.CampaignPage
// @Failure 502 {object} errors.ErrorResponse
// @Router /campaigns [get]
func (h *CampaignHandler) Browse(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	result, err := h.client.ListCampaigns(c.Request().Context(), upstream.ListOptions{
		Status:   upstream.CampaignStatus(c.QueryParam("status")),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Fetch one campaign by id or slug
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign id or slug"
// @Success 200 {object} upstream.Campaign
// @Failure 404 {object} errors.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	result, err := h.client.GetCampaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// My godoc
// @Summary List the beneficiary's own campaigns
// @Tags campaigns
// @Produce json
// @Success 200 {array} upstream.Campaign
// @Failure 401 {object} errors.ErrorResponse
// @Router /campaigns/my [get]
func (h *CampaignHandler) My(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}
	result, err := h.client.MyCampaigns(c.Request().Context(), h.sessions.Source(sess.ID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Create godoc
// @Summary Submit a new campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body campaign.Form true "Campaign form"
// @Success 201 {object} CreateCampaignResponse
// @Failure 400 {object} FieldErrorsResponse
// @Failure 409 {object} FieldErrorsResponse
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	return h.submit(c, "")
}

// Update godoc
// @Summary Edit an existing campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign id"
// @Param request body campaign.Form true "Campaign form"
// @Success 200 {object} CreateCampaignResponse
// @Failure 400 {object} FieldErrorsResponse
// @Failure 409 {object} FieldErrorsResponse
// @Router /campaigns/{id} [patch]
func (h *CampaignHandler) Update(c echo.Context) error {
	return h.submit(c, c.Param("id"))
}

func (h *CampaignHandler) submit(c echo.Context, campaignID string) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	var form campaign.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if form.Slug == "" {
		form.Slug = campaign.Slugify(form.Title)
	}
	if form.GoalAmount == 0 && form.GoalDisplay != "" {
		form.GoalAmount = campaign.ParseAmount(form.GoalDisplay)
	}

	validate := c.Echo().Validator.(*CustomValidator).Validator()
	if fieldErrors := form.Validate(validate); len(fieldErrors) > 0 {
		return c.JSON(http.StatusBadRequest, FieldErrorsResponse{Errors: fieldErrors})
	}

	ctx := c.Request().Context()
	source := h.sessions.Source(sess.ID)

	var (
		result *upstream.Campaign
		err    error
	)
	if campaignID == "" {
		result, err = h.client.CreateCampaign(ctx, source, form.Input())
	} else {
		result, err = h.client.UpdateCampaign(ctx, source, campaignID, form.Input())
	}
	if err != nil {
		// A slug conflict belongs on the slug field, not in a generic banner.
		if isSlugConflict(err) {
			return c.JSON(http.StatusConflict, FieldErrorsResponse{
				Errors: map[string]string{"slug": "esa URL de campaña ya está en uso, elegí otra"},
			})
		}
		return httpError(err)
	}

	breakdown := h.rates.BreakdownFor(ctx, form.GoalAmount)
	status := http.StatusCreated
	if campaignID != "" {
		status = http.StatusOK
	}
	return c.JSON(status, CreateCampaignResponse{Campaign: result, Breakdown: &breakdown})
}

// UploadImages godoc
// @Summary Upload campaign images
// @Tags campaigns
// @Accept mpfd
// @Produce json
// @Param images formData file true "Image files (up to 5, 5MB each)"
// @Param campaignId formData string false "Existing campaign id"
// @Param queued query int false "Images already attached to the form"
// @Success 200 {object} map[string][]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /campaigns/images/upload [post]
func (h *CampaignHandler) UploadImages(c echo.Context) error {
	sess, ok := session.Current(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "session required")
	}

	mpForm, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
	}
	headers := mpForm.File["images"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no images in request")
	}

	queued, _ := strconv.Atoi(c.QueryParam("queued"))
	metas := make([]campaign.ImageMeta, 0, len(headers))
	for _, header := range headers {
		metas = append(metas, campaign.ImageMeta{
			Name: header.Filename,
			Size: header.Size,
			MIME: header.Header.Get("Content-Type"),
		})
	}
	if err := campaign.ValidateImages(queued, metas); err != nil {
		return httpError(err)
	}

	files := make([]upstream.ImageFile, 0, len(headers))
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
		}
		files = append(files, upstream.ImageFile{Name: header.Filename, Content: content})
	}

	urls, err := h.client.UploadImages(
		c.Request().Context(),
		h.sessions.Source(sess.ID),
		c.FormValue("campaignId"),
		files,
		nil,
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"urls": urls})
}

// FeeBreakdown godoc
// @Summary Fee breakdown and narration for a goal amount
// @Tags campaigns
// @Produce json
// @Param amount query number true "Goal amount"
// @Success 200 {object} FeeBreakdownResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /campaigns/fee-breakdown [get]
func (h *CampaignHandler) FeeBreakdown(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a positive number")
	}

	breakdown := h.rates.BreakdownFor(c.Request().Context(), amount)
	return c.JSON(http.StatusOK, FeeBreakdownResponse{
		Breakdown: breakdown,
		Formatted: campaign.FormatCurrency(amount),
		InWords:   campaign.AmountInWords(int64(amount)),
	})
}
