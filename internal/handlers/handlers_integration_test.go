package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"vexpo/internal/events"
	"vexpo/internal/handlers"
	"vexpo/internal/middleware"
	"vexpo/internal/models"
	"vexpo/internal/realtime"
	"vexpo/internal/repositories"
	"vexpo/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupTestApp builds the full HTTP surface against an in-memory SQLite
// database, wired exactly like main but without a message broker.
func setupTestApp(t *testing.T) (*fiber.App, *realtime.Hub) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Expo{},
		&models.ExpoRegistration{},
		&models.Exhibitor{},
		&models.VirtualBooth{},
		&models.UserInteraction{},
		&models.Notification{},
		&models.AdminActivityLog{},
		&models.EventSchedule{},
		&models.Feedback{},
	))

	hub := realtime.NewHub()
	emitter := events.NewFanout(hub, nil)

	userRepo := repositories.NewGORMUserRepository(db)
	expoRepo := repositories.NewGORMExpoRepository(db)
	registrationRepo := repositories.NewGORMExpoRegistrationRepository(db)
	scheduleRepo := repositories.NewGORMEventScheduleRepository(db)
	exhibitorRepo := repositories.NewGORMExhibitorRepository(db)
	boothRepo := repositories.NewGORMVirtualBoothRepository(db)
	interactionRepo := repositories.NewGORMUserInteractionRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)
	adminLogRepo := repositories.NewGORMAdminActivityLogRepository(db)
	feedbackRepo := repositories.NewGORMFeedbackRepository(db)

	authService := services.NewAuthService(userRepo, emitter, "test_jwt_secret")
	userService := services.NewUserService(userRepo, emitter)
	expoService := services.NewExpoService(expoRepo, registrationRepo, scheduleRepo, notificationRepo, emitter)
	exhibitorService := services.NewExhibitorService(exhibitorRepo, boothRepo, interactionRepo, emitter)
	notificationService := services.NewNotificationService(notificationRepo, adminLogRepo, feedbackRepo, emitter)

	app := fiber.New()
	api := app.Group("/api")

	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	expoHandler := handlers.NewExpoHandler(expoService)
	exhibitorHandler := handlers.NewExhibitorHandler(exhibitorService)
	expoHandler.RegisterPublicRoutes(api)
	exhibitorHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	handlers.NewUserHandler(userService).RegisterProtectedRoutes(protected)
	expoHandler.RegisterProtectedRoutes(protected)
	exhibitorHandler.RegisterProtectedRoutes(protected)
	handlers.NewNotificationHandler(notificationService).RegisterProtectedRoutes(protected)

	return app, hub
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &payload)
	return resp, payload
}

func doJSONList(t *testing.T, app *fiber.App, path, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var list []map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &list)
	return resp, list
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["auth_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// recorderConn captures frames delivered through the hub.
type recorderConn struct {
	frames []realtime.Frame
}

func (c *recorderConn) WriteJSON(v interface{}) error {
	c.frames = append(c.frames, v.(realtime.Frame))
	return nil
}

func (c *recorderConn) Close() error { return nil }

func TestAuthEndpoints(t *testing.T) {
	app, _ := setupTestApp(t)

	// Registration issues a usable token.
	token := registerUser(t, app, "alice@example.com")
	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")

	// A duplicate email is rejected regardless of case.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "ALICE@example.com",
		"name":     "Alice Again",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "USER_ALREADY_EXISTS", body["error_code"])
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["timestamp"])

	// A malformed email fails validation with a details map.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"name":     "Bob",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
	assert.NotEmpty(t, body["details"])

	// Login with the wrong password and with an unknown email produce the
	// same error code.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body["error_code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body["error_code"])

	// Missing credentials are reported before any lookup.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", body["error_code"])

	// Successful login returns a fresh token.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["auth_token"])

	// Recovery does not reveal whether the address exists.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/recover-password", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthGate(t *testing.T) {
	app, _ := setupTestApp(t)

	// Expo listings are public.
	resp, _ := doJSONList(t, app, "/api/expos", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Protected routes reject a missing token.
	resp, body := doJSON(t, app, http.MethodGet, "/api/expo-registrations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_TOKEN_MISSING", body["error_code"])

	// A garbage token is rejected as invalid.
	resp, body = doJSON(t, app, http.MethodGet, "/api/expo-registrations", "not.a.token", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "AUTH_TOKEN_INVALID", body["error_code"])
}

func TestExpoLifecycle(t *testing.T) {
	app, hub := setupTestApp(t)
	token := registerUser(t, app, "organizer@example.com")

	// Creation requires a token and normalizes the date.
	resp, body := doJSON(t, app, http.MethodPost, "/api/expos", token, map[string]interface{}{
		"title":       "Tech Expo",
		"description": "Annual technology showcase",
		"date":        "2026-09-15",
		"category":    "technology",
		"location":    "Online",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	expoID, _ := body["expo_id"].(string)
	require.NotEmpty(t, expoID)
	assert.Equal(t, "2026-09-15T00:00:00Z", body["date"])

	// Unauthenticated creation is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/expos", "", map[string]interface{}{
		"title": "No Token Expo", "description": "x", "date": "2026-09-15", "category": "c", "location": "l",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The detail read is public.
	resp, body = doJSON(t, app, http.MethodGet, "/api/expos/"+expoID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tech Expo", body["title"])

	// An unknown ID is a named not-found.
	resp, body = doJSON(t, app, http.MethodGet, "/api/expos/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "EXPO_NOT_FOUND", body["error_code"])

	// A partial update touches only the provided fields and is broadcast
	// to every connected client.
	conn := &recorderConn{}
	hub.Register("observer", conn)

	resp, body = doJSON(t, app, http.MethodPatch, "/api/expos/"+expoID, token, map[string]interface{}{
		"featured": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["featured"])
	assert.Equal(t, "Tech Expo", body["title"])
	require.Len(t, conn.frames, 1)
	assert.Equal(t, "expo/updated", conn.frames[0].Event)

	// An empty patch body is rejected.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/expos/"+expoID, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "NO_UPDATE_FIELDS", body["error_code"])

	// A schedule entry attaches to the expo and is listed publicly.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/event-schedules", token, map[string]interface{}{
		"expo_id":    expoID,
		"event_name": "Opening Keynote",
		"event_time": "2026-09-15T09:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, schedules := doJSONList(t, app, "/api/event-schedules", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, schedules, 1)
}

func TestExpoRegistrationFlow(t *testing.T) {
	app, hub := setupTestApp(t)
	token := registerUser(t, app, "attendee@example.com")

	_, me := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	userID, _ := me["user_id"].(string)
	require.NotEmpty(t, userID)

	resp, body := doJSON(t, app, http.MethodPost, "/api/expos", token, map[string]interface{}{
		"title": "Health Expo", "description": "Wellness fair", "date": "2026-10-01", "category": "health", "location": "Online",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	expoID := body["expo_id"].(string)

	// The attendee's connection sees the targeted notification; a stranger
	// sees only the broadcast registration event.
	attendeeConn := &recorderConn{}
	strangerConn := &recorderConn{}
	hub.Register(userID, attendeeConn)
	hub.Register("someone-else", strangerConn)

	resp, body = doJSON(t, app, http.MethodPost, "/api/expo-registrations", token, map[string]string{
		"user_id": userID,
		"expo_id": expoID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, userID, body["user_id"])

	attendeeEvents := []string{}
	for _, frame := range attendeeConn.frames {
		attendeeEvents = append(attendeeEvents, frame.Event)
	}
	assert.Contains(t, attendeeEvents, "expo/registrationCreated")
	assert.Contains(t, attendeeEvents, "notification/created")

	strangerEvents := []string{}
	for _, frame := range strangerConn.frames {
		strangerEvents = append(strangerEvents, frame.Event)
	}
	assert.Contains(t, strangerEvents, "expo/registrationCreated")
	assert.NotContains(t, strangerEvents, "notification/created")

	// Registering twice for the same expo fails.
	resp, body = doJSON(t, app, http.MethodPost, "/api/expo-registrations", token, map[string]string{
		"user_id": userID,
		"expo_id": expoID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ALREADY_REGISTERED", body["error_code"])

	// Registering on someone else's behalf is denied.
	resp, body = doJSON(t, app, http.MethodPost, "/api/expo-registrations", token, map[string]string{
		"user_id": "someone-else",
		"expo_id": expoID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])

	// The side-effect notification is stored and readable by its owner.
	resp, notifications := doJSONList(t, app, "/api/notifications/"+userID, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Your expo registration was successful!", notifications[0]["message"])
	assert.Equal(t, "registration", notifications[0]["type"])

	// Another user's notification list is off limits.
	otherToken := registerUser(t, app, "stranger@example.com")
	resp, body = doJSON(t, app, http.MethodGet, "/api/notifications/"+userID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])
}

func TestExhibitorAndBoothFlow(t *testing.T) {
	app, _ := setupTestApp(t)
	ownerToken := registerUser(t, app, "owner@example.com")
	otherToken := registerUser(t, app, "other@example.com")

	_, me := doJSON(t, app, http.MethodGet, "/api/users/me", ownerToken, nil)
	ownerID := me["user_id"].(string)

	// First exhibitor profile succeeds; the second for the same user fails.
	resp, body := doJSON(t, app, http.MethodPost, "/api/exhibitors", ownerToken, map[string]string{
		"user_id": ownerID,
		"name":    "Acme Corp",
		"email":   "booth@acme.example",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	exhibitorID := body["exhibitor_id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/exhibitors", ownerToken, map[string]string{
		"user_id": ownerID,
		"name":    "Acme Duplicate",
		"email":   "booth@acme.example",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EXHIBITOR_EXISTS", body["error_code"])

	// The profile read is public.
	resp, body = doJSON(t, app, http.MethodGet, "/api/exhibitors/"+exhibitorID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme Corp", body["name"])

	// Only the owner may update the profile.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/exhibitors/"+exhibitorID, otherToken, map[string]string{
		"name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])

	// First booth succeeds; the second for the same exhibitor fails.
	resp, body = doJSON(t, app, http.MethodPost, "/api/virtual-booths", ownerToken, map[string]string{
		"exhibitor_id": exhibitorID,
		"description":  "Live demos all day",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	boothID := body["booth_id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/virtual-booths", ownerToken, map[string]string{
		"exhibitor_id": exhibitorID,
		"description":  "Second booth",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BOOTH_EXISTS", body["error_code"])

	// A non-owner cannot create a booth for the exhibitor either.
	resp, body = doJSON(t, app, http.MethodPost, "/api/virtual-booths", otherToken, map[string]string{
		"exhibitor_id": exhibitorID,
		"description":  "Not yours",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])

	// Booth update authorization walks booth -> exhibitor -> user.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/virtual-booths/"+boothID, otherToken, map[string]string{
		"description": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])

	resp, body = doJSON(t, app, http.MethodPatch, "/api/virtual-booths/"+boothID, ownerToken, map[string]string{
		"description": "Updated booth copy",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Updated booth copy", body["description"])

	// The booth read is public.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/virtual-booths/"+boothID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExpoSearch(t *testing.T) {
	app, _ := setupTestApp(t)
	token := registerUser(t, app, "seeder@example.com")

	for i := 0; i < 12; i++ {
		category := "technology"
		if i%2 == 1 {
			category = "health"
		}
		resp, _ := doJSON(t, app, http.MethodPost, "/api/expos", token, map[string]interface{}{
			"title":       fmt.Sprintf("Expo %02d", i),
			"description": "Showcase",
			"date":        fmt.Sprintf("2026-09-%02d", i+1),
			"category":    category,
			"location":    "Online",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// The default page size is 10.
	resp, list := doJSONList(t, app, "/api/expos", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 10)

	// Offset pages through the remainder.
	resp, list = doJSONList(t, app, "/api/expos?offset=10", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 2)

	// Matching is case-insensitive across the text columns.
	resp, list = doJSONList(t, app, "/api/expos?query=EXPO+01", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "Expo 01", list[0]["title"])

	resp, list = doJSONList(t, app, "/api/expos?query=health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 6)

	// Explicit sort orders the page; unknown sort fields fall back to the
	// default instead of failing.
	resp, list = doJSONList(t, app, "/api/expos?sort_by=title&sort_order=asc&limit=3", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 3)
	assert.Equal(t, "Expo 00", list[0]["title"])
	assert.Equal(t, "Expo 01", list[1]["title"])

	resp, list = doJSONList(t, app, "/api/expos?sort_by=drop+table&sort_order=up", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 10)

	// The default order is newest date first.
	resp, list = doJSONList(t, app, "/api/expos?limit=1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "Expo 11", list[0]["title"])
}

func TestFeedbackAndAdminLogs(t *testing.T) {
	app, _ := setupTestApp(t)
	token := registerUser(t, app, "reviewer@example.com")

	_, me := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	userID := me["user_id"].(string)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/feedback", token, map[string]string{
		"user_id":          userID,
		"feedback_content": "Great booth layout",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, list := doJSONList(t, app, "/api/feedback?query=booth", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin-logs", token, map[string]string{
		"admin_id":             userID,
		"activity_description": "Removed an expired expo",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, list = doJSONList(t, app, "/api/admin-logs", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)
}
