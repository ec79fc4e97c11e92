// Package client is a Go SDK for the vexpo API. It wraps the REST surface
// with typed methods, keeps a local Store of authentication and notification
// state, and can subscribe to the server's real-time event stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vexpo/internal/models"
)

// APIError is returned for any non-2xx response, carrying the server's
// error envelope.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Code       string `json:"error_code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Code, e.Message)
}

// SearchOptions mirror the query parameters shared by every listing
// endpoint. Zero values are omitted so the server applies its defaults.
type SearchOptions struct {
	Query     string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

func (o SearchOptions) encode() string {
	values := url.Values{}
	if o.Query != "" {
		values.Set("query", o.Query)
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		values.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.SortBy != "" {
		values.Set("sort_by", o.SortBy)
	}
	if o.SortOrder != "" {
		values.Set("sort_order", o.SortOrder)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// Client is an HTTP client for the vexpo API. It is safe for concurrent use
// once authenticated; Register and Login mutate the held token and should be
// called before concurrent requests start.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	store      *Store
}

// New creates a Client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      NewStore(),
	}
}

// Store exposes the client's local state snapshot.
func (c *Client) Store() *Store {
	return c.store
}

// Token returns the bearer token held after Register or Login, or the empty
// string when unauthenticated.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs a previously obtained bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
	c.store.Apply(func(s State) State {
		s.Auth.Token = token
		s.Auth.LoggedIn = token != ""
		return s
	})
}

func (c *Client) request(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		payload, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(payload, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(payload))
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type tokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// Register creates an account and stores the returned bearer token on the
// client.
func (c *Client) Register(ctx context.Context, input models.RegisterUserInput) (string, error) {
	var resp tokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/register", input, &resp); err != nil {
		c.store.Apply(func(s State) State { return ApplyAuthError(s, err.Error()) })
		return "", err
	}
	c.SetToken(resp.AuthToken)
	return resp.AuthToken, nil
}

// Login exchanges credentials for a bearer token and stores it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	input := models.LoginInput{Email: email, Password: password}
	var resp tokenResponse
	if err := c.request(ctx, http.MethodPost, "/api/auth/login", input, &resp); err != nil {
		c.store.Apply(func(s State) State { return ApplyAuthError(s, err.Error()) })
		return "", err
	}
	c.SetToken(resp.AuthToken)
	return resp.AuthToken, nil
}

// RecoverPassword requests a password recovery mail for the given address.
// The server responds identically whether or not the address is known.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	return c.request(ctx, http.MethodPost, "/api/auth/recover-password", map[string]string{"email": email}, nil)
}

// Logout drops the held token and resets the authenticated state.
func (c *Client) Logout() {
	c.token = ""
	c.store.Apply(ApplyLogout)
}

// Me returns the account the held token belongs to and caches it in the
// store.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.request(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	c.store.Apply(func(s State) State { return ApplyCurrentUser(s, &user) })
	return &user, nil
}

// GetUser fetches a user profile by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.request(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to the caller's own profile.
func (c *Client) UpdateUser(ctx context.Context, userID string, input models.UpdateUserInput) (*models.User, error) {
	var user models.User
	if err := c.request(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(userID), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers lists users matching the search options.
func (c *Client) SearchUsers(ctx context.Context, opts SearchOptions) ([]models.User, error) {
	var users []models.User
	if err := c.request(ctx, http.MethodGet, "/api/users"+opts.encode(), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchExpos lists expos matching the search options.
func (c *Client) SearchExpos(ctx context.Context, opts SearchOptions) ([]models.Expo, error) {
	var expos []models.Expo
	if err := c.request(ctx, http.MethodGet, "/api/expos"+opts.encode(), nil, &expos); err != nil {
		return nil, err
	}
	return expos, nil
}

// GetExpo fetches a single expo by ID.
func (c *Client) GetExpo(ctx context.Context, expoID string) (*models.Expo, error) {
	var expo models.Expo
	if err := c.request(ctx, http.MethodGet, "/api/expos/"+url.PathEscape(expoID), nil, &expo); err != nil {
		return nil, err
	}
	return &expo, nil
}

// CreateExpo creates a new expo.
func (c *Client) CreateExpo(ctx context.Context, input models.CreateExpoInput) (*models.Expo, error) {
	var expo models.Expo
	if err := c.request(ctx, http.MethodPost, "/api/expos", input, &expo); err != nil {
		return nil, err
	}
	return &expo, nil
}

// UpdateExpo applies a partial update to an expo.
func (c *Client) UpdateExpo(ctx context.Context, expoID string, input models.UpdateExpoInput) (*models.Expo, error) {
	var expo models.Expo
	if err := c.request(ctx, http.MethodPatch, "/api/expos/"+url.PathEscape(expoID), input, &expo); err != nil {
		return nil, err
	}
	return &expo, nil
}

// RegisterForExpo signs the authenticated user up for an expo.
func (c *Client) RegisterForExpo(ctx context.Context, userID, expoID string) (*models.ExpoRegistration, error) {
	input := models.CreateExpoRegistrationInput{UserID: userID, ExpoID: expoID}
	var registration models.ExpoRegistration
	if err := c.request(ctx, http.MethodPost, "/api/expo-registrations", input, &registration); err != nil {
		return nil, err
	}
	return &registration, nil
}

// SearchRegistrations lists expo registrations matching the search options.
func (c *Client) SearchRegistrations(ctx context.Context, opts SearchOptions) ([]models.ExpoRegistration, error) {
	var registrations []models.ExpoRegistration
	if err := c.request(ctx, http.MethodGet, "/api/expo-registrations"+opts.encode(), nil, &registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

// SearchSchedules lists event schedule entries matching the search options.
func (c *Client) SearchSchedules(ctx context.Context, opts SearchOptions) ([]models.EventSchedule, error) {
	var schedules []models.EventSchedule
	if err := c.request(ctx, http.MethodGet, "/api/event-schedules"+opts.encode(), nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule adds a program item to an expo.
func (c *Client) CreateSchedule(ctx context.Context, input models.CreateEventScheduleInput) (*models.EventSchedule, error) {
	var schedule models.EventSchedule
	if err := c.request(ctx, http.MethodPost, "/api/event-schedules", input, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// CreateExhibitor creates an exhibitor profile for the authenticated user.
func (c *Client) CreateExhibitor(ctx context.Context, input models.CreateExhibitorInput) (*models.Exhibitor, error) {
	var exhibitor models.Exhibitor
	if err := c.request(ctx, http.MethodPost, "/api/exhibitors", input, &exhibitor); err != nil {
		return nil, err
	}
	return &exhibitor, nil
}

// GetExhibitor fetches an exhibitor profile by ID.
func (c *Client) GetExhibitor(ctx context.Context, exhibitorID string) (*models.Exhibitor, error) {
	var exhibitor models.Exhibitor
	if err := c.request(ctx, http.MethodGet, "/api/exhibitors/"+url.PathEscape(exhibitorID), nil, &exhibitor); err != nil {
		return nil, err
	}
	return &exhibitor, nil
}

// UpdateExhibitor applies a partial update to an exhibitor the caller owns.
func (c *Client) UpdateExhibitor(ctx context.Context, exhibitorID string, input models.UpdateExhibitorInput) (*models.Exhibitor, error) {
	var exhibitor models.Exhibitor
	if err := c.request(ctx, http.MethodPatch, "/api/exhibitors/"+url.PathEscape(exhibitorID), input, &exhibitor); err != nil {
		return nil, err
	}
	return &exhibitor, nil
}

// SearchExhibitors lists exhibitors matching the search options.
func (c *Client) SearchExhibitors(ctx context.Context, opts SearchOptions) ([]models.Exhibitor, error) {
	var exhibitors []models.Exhibitor
	if err := c.request(ctx, http.MethodGet, "/api/exhibitors"+opts.encode(), nil, &exhibitors); err != nil {
		return nil, err
	}
	return exhibitors, nil
}

// CreateBooth creates the virtual booth for an exhibitor the caller owns.
func (c *Client) CreateBooth(ctx context.Context, input models.CreateVirtualBoothInput) (*models.VirtualBooth, error) {
	var booth models.VirtualBooth
	if err := c.request(ctx, http.MethodPost, "/api/virtual-booths", input, &booth); err != nil {
		return nil, err
	}
	return &booth, nil
}

// GetBooth fetches a virtual booth by ID.
func (c *Client) GetBooth(ctx context.Context, boothID string) (*models.VirtualBooth, error) {
	var booth models.VirtualBooth
	if err := c.request(ctx, http.MethodGet, "/api/virtual-booths/"+url.PathEscape(boothID), nil, &booth); err != nil {
		return nil, err
	}
	return &booth, nil
}

// UpdateBooth applies a partial update to a booth the caller owns.
func (c *Client) UpdateBooth(ctx context.Context, boothID string, input models.UpdateVirtualBoothInput) (*models.VirtualBooth, error) {
	var booth models.VirtualBooth
	if err := c.request(ctx, http.MethodPatch, "/api/virtual-booths/"+url.PathEscape(boothID), input, &booth); err != nil {
		return nil, err
	}
	return &booth, nil
}

// SearchInteractions lists recorded exhibitor interactions matching the
// search options.
func (c *Client) SearchInteractions(ctx context.Context, opts SearchOptions) ([]models.UserInteraction, error) {
	var interactions []models.UserInteraction
	if err := c.request(ctx, http.MethodGet, "/api/user-interactions"+opts.encode(), nil, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}

// Notifications lists the caller's notifications, newest first, and caches
// them in the store.
func (c *Client) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.request(ctx, http.MethodGet, "/api/notifications/"+url.PathEscape(userID), nil, &notifications); err != nil {
		return nil, err
	}
	c.store.Apply(func(s State) State { return ApplyNotificationList(s, notifications) })
	return notifications, nil
}

// CreateFeedback submits platform feedback.
func (c *Client) CreateFeedback(ctx context.Context, input models.CreateFeedbackInput) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := c.request(ctx, http.MethodPost, "/api/feedback", input, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// SearchFeedback lists feedback entries matching the search options.
func (c *Client) SearchFeedback(ctx context.Context, opts SearchOptions) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := c.request(ctx, http.MethodGet, "/api/feedback"+opts.encode(), nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// CreateAdminLog records an administrative activity entry.
func (c *Client) CreateAdminLog(ctx context.Context, input models.CreateAdminActivityLogInput) (*models.AdminActivityLog, error) {
	var entry models.AdminActivityLog
	if err := c.request(ctx, http.MethodPost, "/api/admin-logs", input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SearchAdminLogs lists admin activity entries matching the search options.
func (c *Client) SearchAdminLogs(ctx context.Context, opts SearchOptions) ([]models.AdminActivityLog, error) {
	var entries []models.AdminActivityLog
	if err := c.request(ctx, http.MethodGet, "/api/admin-logs"+opts.encode(), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
