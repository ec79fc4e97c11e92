package client

import (
	"sync"

	"vexpo/internal/models"
)

// AuthState tracks the authenticated session held by the client.
type AuthState struct {
	CurrentUser *models.User
	Token       string
	LoggedIn    bool
	Error       string
}

// NotificationState caches the caller's notifications. Unread counts
// entries received over the event stream since the last full list fetch.
type NotificationState struct {
	Items  []models.Notification
	Unread int
}

// SearchFilters hold client-side listing filters applied on top of the
// server's query parameters.
type SearchFilters struct {
	DateFrom string
	DateTo   string
	Category string
	Location string
}

// State is the full client-side snapshot. Updates are expressed as pure
// functions from State to State so they can be tested without a Store.
type State struct {
	Auth          AuthState
	Notifications NotificationState
	Filters       SearchFilters
}

// ApplyCurrentUser records the authenticated account and clears any
// previous auth error.
func ApplyCurrentUser(s State, user *models.User) State {
	s.Auth.CurrentUser = user
	s.Auth.LoggedIn = true
	s.Auth.Error = ""
	return s
}

// ApplyAuthError records a failed register or login attempt.
func ApplyAuthError(s State, message string) State {
	s.Auth.Error = message
	return s
}

// ApplyLogout resets the session but keeps listing filters intact.
func ApplyLogout(s State) State {
	s.Auth = AuthState{}
	s.Notifications = NotificationState{}
	return s
}

// ApplyNotificationList replaces the cached notifications with a full fetch
// and resets the unread counter.
func ApplyNotificationList(s State, items []models.Notification) State {
	s.Notifications.Items = items
	s.Notifications.Unread = 0
	return s
}

// ApplyNotificationReceived prepends a notification pushed over the event
// stream and bumps the unread counter.
func ApplyNotificationReceived(s State, n models.Notification) State {
	items := make([]models.Notification, 0, len(s.Notifications.Items)+1)
	items = append(items, n)
	items = append(items, s.Notifications.Items...)
	s.Notifications.Items = items
	s.Notifications.Unread++
	return s
}

// ApplyNotificationsSeen clears the unread counter without touching the
// cached entries.
func ApplyNotificationsSeen(s State) State {
	s.Notifications.Unread = 0
	return s
}

// ApplyFilters replaces the client-side listing filters.
func ApplyFilters(s State, filters SearchFilters) State {
	s.Filters = filters
	return s
}

// ApplyClearFilters resets the listing filters to their defaults.
func ApplyClearFilters(s State) State {
	s.Filters = SearchFilters{}
	return s
}

// Store guards a State snapshot for concurrent readers and writers. The
// event stream goroutine and application code may touch it at the same
// time.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// State returns a copy of the current snapshot. The notification slice is
// shared; callers must not mutate it.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply runs a pure update function against the current snapshot.
func (s *Store) Apply(update func(State) State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = update(s.state)
}
