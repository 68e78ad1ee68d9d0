package upstream

import (
	"encoding/json"
	"time"
)

// Role is a platform user role.
type Role string

const (
	RoleDonor       Role = "DONOR"
	RoleBeneficiary Role = "BENEFICIARY"
	RoleAdmin       Role = "ADMIN"
)

// CampaignStatus is the moderation state of a campaign.
type CampaignStatus string

const (
	CampaignPending   CampaignStatus = "PENDING"
	CampaignVerified  CampaignStatus = "VERIFIED"
	CampaignRejected  CampaignStatus = "REJECTED"
	CampaignCompleted CampaignStatus = "COMPLETED"
)

// DonationStatus is the settlement state of a donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "PENDING"
	DonationCompleted DonationStatus = "COMPLETED"
	DonationFailed    DonationStatus = "FAILED"
)

// User mirrors the platform's user record.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Picture  string `json:"profilePicture,omitempty"`
}

// TokenPair is the credential pair issued by the auth service.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CampaignLocation describes where the campaign takes place.
type CampaignLocation struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

// CampaignRecipient describes who receives the funds.
type CampaignRecipient struct {
	Name      string `json:"name"`
	Age       int    `json:"age,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// CampaignCreator describes who runs the campaign.
type CampaignCreator struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

// Campaign mirrors the platform's campaign record.
type Campaign struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	GoalAmount    float64           `json:"goalAmount"`
	CurrentAmount float64           `json:"currentAmount"`
	Status        CampaignStatus    `json:"status"`
	Images        []string          `json:"images"`
	Location      CampaignLocation  `json:"location"`
	Recipient     CampaignRecipient `json:"recipient"`
	Creator       CampaignCreator   `json:"creator"`
	Tags          []string          `json:"tags"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// CampaignPage is one page of a campaign listing.
type CampaignPage struct {
	Items      []Campaign `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

// Donation mirrors the platform's donation record.
type Donation struct {
	ID           string         `json:"id"`
	CampaignID   string         `json:"campaignId"`
	CampaignName string         `json:"campaignName,omitempty"`
	DonorName    string         `json:"donorName,omitempty"`
	Amount       float64        `json:"amount"`
	Status       DonationStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// DonationPage is one page of a donation listing.
type DonationPage struct {
	Items []Donation `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
}

// CommissionRates are the fee fractions applied to a campaign goal.
type CommissionRates struct {
	PlatformCommission float64 `json:"platformCommission"`
	MercadoPagoFee     float64 `json:"mercadoPagoFee"`
}

// PlatformStatistics are the public dashboard metrics.
type PlatformStatistics struct {
	TotalCampaigns int     `json:"totalCampaigns"`
	TotalDonations int     `json:"totalDonations"`
	TotalRaised    float64 `json:"totalRaised"`
	ActiveDonors   int     `json:"activeDonors"`
}

// BeneficiaryStatistics are one beneficiary's dashboard metrics.
type BeneficiaryStatistics struct {
	Campaigns      int     `json:"campaigns"`
	DonationsCount int     `json:"donationsCount"`
	TotalReceived  float64 `json:"totalReceived"`
}

// PaymentStatus reports whether the user's MercadoPago account is linked.
// The upstream has shipped several field names for the same fact; they are
// normalized here once so callers never probe response shapes.
type PaymentStatus struct {
	Connected bool
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw struct {
		Connected   *bool `json:"connected"`
		IsConnected *bool `json:"isConnected"`
		Snake       *bool `json:"is_connected"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Connected != nil:
		s.Connected = *raw.Connected
	case raw.IsConnected != nil:
		s.Connected = *raw.IsConnected
	case raw.Snake != nil:
		s.Connected = *raw.Snake
	default:
		s.Connected = false
	}
	return nil
}

// ConnectTarget carries the hosted authorization URL for linking MercadoPago.
// Same normalization story as PaymentStatus.
type ConnectTarget struct {
	URL string
}

func (t *ConnectTarget) UnmarshalJSON(data []byte) error {
	var raw struct {
		RedirectURL string `json:"redirectUrl"`
		Snake       string `json:"redirect_url"`
		URL         string `json:"url"`
		InitPoint   string `json:"init_point"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, candidate := range []string{raw.RedirectURL, raw.Snake, raw.URL, raw.InitPoint} {
		if candidate != "" {
			t.URL = candidate
			return nil
		}
	}
	return nil
}

// Profile mirrors the platform's profile record.
type Profile struct {
	User
	Bio     string `json:"bio,omitempty"`
	Address string `json:"address,omitempty"`
}

// ProfileUpdate carries mutable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Address  string `json:"address,omitempty"`
}

// CampaignInput is the creation/edit payload sent upstream.
type CampaignInput struct {
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	GoalAmount  float64           `json:"goalAmount"`
	Images      []string          `json:"images"`
	Location    CampaignLocation  `json:"location"`
	Recipient   CampaignRecipient `json:"recipient"`
	Creator     CampaignCreator   `json:"creator"`
	Tags        []string          `json:"tags"`
}
