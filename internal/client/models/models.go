// Package models defines the wire and view types exchanged with the SnipURL
// backend. All timestamps are kept as the backend's ISO strings; the client
// displays them verbatim.
package models

import "strings"

// Subscription tiers known to the backend.
const (
	TierFree       = "FREE"
	TierPremium    = "PREMIUM"
	TierEnterprise = "ENTERPRISE"
)

// Profile is the user profile snapshot cached by the client. The backend
// emits the numeric id as "userId" on login responses and as "id" on
// /api/auth/me, so both tags are accepted.
type Profile struct {
	UserID           int64  `json:"userId,omitempty"`
	ID               int64  `json:"id,omitempty"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// SubjectID returns the user's numeric id regardless of which endpoint the
// profile came from.
func (p *Profile) SubjectID() int64 {
	if p.UserID != 0 {
		return p.UserID
	}
	return p.ID
}

// DisplayName joins the non-empty name parts, falling back to the email.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

// Session couples the cached profile with the credential token. A non-nil
// Session always carries a non-empty token.
type Session struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

// AuthResponse is the payload of POST /api/auth/login.
type AuthResponse struct {
	Token            string `json:"token"`
	Type             string `json:"type"`
	UserID           int64  `json:"userId"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// Profile converts the auth payload into a cacheable profile snapshot.
func (a *AuthResponse) AsProfile() Profile {
	return Profile{
		UserID:           a.UserID,
		Email:            a.Email,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		SubscriptionTier: a.SubscriptionTier,
	}
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegisterResult reports a completed registration. Registration success does
// not imply login.
type RegisterResult struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

// CreateURLRequest is the body of POST /api/urls.
type CreateURLRequest struct {
	OriginalURL string `json:"originalUrl"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}

// URL is one shortened link as returned by the backend.
type URL struct {
	ID          int64  `json:"id"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ClickCount  int64  `json:"clickCount"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}

// URLPage is one page of the user's links, Spring Data Page shaped.
type URLPage struct {
	Content       []URL `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// UserStats is the payload of GET /api/urls/stats.
type UserStats struct {
	TotalURLs        int64  `json:"totalUrls"`
	TotalClicks      int64  `json:"totalClicks"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// Analytics is the payload of GET /api/analytics/{shortCode} and of the
// dashboard aggregate.
type Analytics struct {
	ShortCode       string         `json:"shortCode"`
	TotalClicks     int64          `json:"totalClicks"`
	ClicksToday     int64          `json:"clicksToday"`
	ClicksThisWeek  int64          `json:"clicksThisWeek"`
	ClicksThisMonth int64          `json:"clicksThisMonth"`
	DailyClicks     []DailyClicks  `json:"dailyClicks"`
	TopCountries    []CountrySlice `json:"topCountries"`
	BrowserStats    []BrowserSlice `json:"browserStats"`
	DeviceStats     []DeviceSlice  `json:"deviceStats"`
}

type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

type CountrySlice struct {
	Country    string  `json:"country"`
	Clicks     int64   `json:"clicks"`
	Percentage float64 `json:"percentage"`
}

type BrowserSlice struct {
	Browser    string  `json:"browser"`
	Clicks     int64   `json:"clicks"`
	Percentage float64 `json:"percentage"`
}

type DeviceSlice struct {
	DeviceType string  `json:"deviceType"`
	Clicks     int64   `json:"clicks"`
	Percentage float64 `json:"percentage"`
}
