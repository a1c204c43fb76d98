package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jumparena/internal/database"
	"jumparena/internal/domain"
	"jumparena/internal/middleware"
	"jumparena/internal/modules/auth"
	"jumparena/internal/modules/booking"
	"jumparena/internal/modules/catalog"
	"jumparena/internal/modules/notification"
	"jumparena/internal/modules/payment"
	"jumparena/internal/modules/subscription"
	"jumparena/internal/modules/visit"
	jwtsvc "jumparena/internal/pkg/jwt"
	"jumparena/internal/repository"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB

	clientID   int64
	zoneID     int64
	slotID     int64
	sockID     int64
	adminToken string
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *apiError              `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))

	zoneRepo := repository.NewZoneRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	slotRepo := repository.NewScheduleSlotRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	j := jwtsvc.New("e2e-secret", time.Hour)

	hub := notification.NewHub()
	t.Cleanup(hub.Close)
	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	authHandler := auth.NewHandler(auth.NewService(accountRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(zoneRepo, serviceRepo, slotRepo))
	bookingHandler := booking.NewHandler(booking.NewService(db, notifService))
	paymentHandler := payment.NewHandler(payment.NewService(db, notifService))
	subscriptionHandler := subscription.NewHandler(subscription.NewService(db, notifService))
	visitHandler := visit.NewHandler(visit.NewService(db))

	r := gin.New()
	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	catalogHandler.RegisterRoutes(v1)

	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(j), middleware.StaffOnly())
	bookingHandler.RegisterStaffRoutes(admin)
	paymentHandler.RegisterStaffRoutes(admin)
	visitHandler.RegisterStaffRoutes(admin)

	client := v1.Group("/client")
	client.Use(middleware.Auth(j), middleware.ClientOnly())
	bookingHandler.RegisterClientRoutes(client)
	paymentHandler.RegisterClientRoutes(client)
	subscriptionHandler.RegisterClientRoutes(client)
	notifHandler.RegisterClientRoutes(client)

	app := &testApp{router: r, db: db}
	app.seed(t, j)
	return app
}

func (a *testApp) seed(t *testing.T, j *jwtsvc.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	adminAccount := &domain.Account{Login: "admin", PasswordHash: string(hash), Role: domain.RoleAdmin}
	require.NoError(t, a.db.Create(adminAccount).Error)

	client := &domain.Client{FullName: "Aliya Nurpeisova", Status: domain.ClientActive}
	require.NoError(t, a.db.Create(client).Error)
	a.clientID = client.ID

	zone := &domain.Zone{
		Name:      "Main Arena",
		Type:      domain.ZoneTrampoline,
		Capacity:  10,
		BasePrice: decimal.RequireFromString("800.00"),
		Status:    domain.ZoneAvailable,
	}
	require.NoError(t, a.db.Create(zone).Error)
	a.zoneID = zone.ID

	socks := &domain.Service{Name: "Grip socks", BasePrice: decimal.RequireFromString("150.00")}
	require.NoError(t, a.db.Create(socks).Error)
	a.sockID = socks.ID

	from := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	slot := &domain.ScheduleSlot{
		ZoneID:       zone.ID,
		DatetimeFrom: from,
		DatetimeTo:   from.Add(time.Hour),
		Capacity:     8,
		Price:        decimal.RequireFromString("700.00"),
		LessonType:   "group",
		IsActive:     true,
	}
	require.NoError(t, a.db.Create(slot).Error)
	a.slotID = slot.ID

	a.adminToken, err = j.GenerateToken(adminAccount.ID, string(domain.RoleAdmin), 0, 0)
	require.NoError(t, err)
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, *apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "body: %s", w.Body.String())
	return w, &parsed
}

func TestFrontDeskFlow(t *testing.T) {
	app := setupApp(t)

	from := time.Now().UTC().Add(2 * time.Hour).Truncate(time.Hour)
	w, res := app.request(t, http.MethodPost, "/api/v1/admin/bookings", app.adminToken, gin.H{
		"client_id":          app.clientID,
		"zone_id":            app.zoneID,
		"datetime_from":      from.Format(time.RFC3339),
		"datetime_to":        from.Add(90 * time.Minute).Format(time.RFC3339),
		"participants_count": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)
	b := res.Data["booking"].(map[string]interface{})
	bookingID := int64(b["id"].(float64))
	assert.Equal(t, "1200", trimDecimal(b["total_sum"]))
	assert.Equal(t, "new", b["status"])

	// an overlapping window is rejected
	w, res = app.request(t, http.MethodPost, "/api/v1/admin/bookings", app.adminToken, gin.H{
		"client_id":          app.clientID,
		"zone_id":            app.zoneID,
		"datetime_from":      from.Add(time.Hour).Format(time.RFC3339),
		"datetime_to":        from.Add(2 * time.Hour).Format(time.RFC3339),
		"participants_count": 2,
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", res.Error.Code)

	// two pairs of grip socks
	path := fmt.Sprintf("/api/v1/admin/bookings/%d/services", bookingID)
	w, res = app.request(t, http.MethodPost, path, app.adminToken, gin.H{
		"service_id": app.sockID,
		"qty":        2,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %v", res)
	b = res.Data["booking"].(map[string]interface{})
	assert.Equal(t, "1500", trimDecimal(b["total_sum"]))

	// partial payment confirms the booking
	path = fmt.Sprintf("/api/v1/admin/bookings/%d/payments", bookingID)
	w, _ = app.request(t, http.MethodPost, path, app.adminToken, gin.H{
		"amount": "1000.00",
		"method": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	path = fmt.Sprintf("/api/v1/admin/bookings/%d", bookingID)
	w, res = app.request(t, http.MethodGet, path, app.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	b = res.Data["booking"].(map[string]interface{})
	assert.Equal(t, "confirmed", b["status"])
	assert.Equal(t, "500", trimDecimal(res.Data["due"]))

	// attendance
	path = fmt.Sprintf("/api/v1/admin/bookings/%d/visit/checkin", bookingID)
	w, _ = app.request(t, http.MethodPost, path, app.adminToken, gin.H{"actual_participants_count": 4})
	require.Equal(t, http.StatusOK, w.Code)

	w, res = app.request(t, http.MethodPost, path, app.adminToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STATE_CONFLICT", res.Error.Code)

	path = fmt.Sprintf("/api/v1/admin/bookings/%d/visit/checkout", bookingID)
	w, _ = app.request(t, http.MethodPost, path, app.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestClientSelfServiceFlow(t *testing.T) {
	app := setupApp(t)

	// register through the public API
	w, res := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"login":     "aliya",
		"password":  "secret123",
		"full_name": "Aliya Reg",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)
	token := res.Data["token"].(string)
	require.NotEmpty(t, token)

	// the public schedule shows the seeded slot with free seats
	w, res = app.request(t, http.MethodGet, "/api/v1/schedule", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := res.Data["slots"].([]interface{})
	require.Len(t, slots, 1)
	assert.Equal(t, float64(8), slots[0].(map[string]interface{})["free_seats"])

	// book three seats with socks for everyone
	path := fmt.Sprintf("/api/v1/client/schedule/%d/book", app.slotID)
	w, res = app.request(t, http.MethodPost, path, token, gin.H{
		"participants_count": 3,
		"services":           []gin.H{{"service_id": app.sockID, "qty": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)
	b := res.Data["booking"].(map[string]interface{})
	bookingID := int64(b["id"].(float64))
	assert.Equal(t, "2550", trimDecimal(b["total_sum"])) // 3*700 + 3*150

	// pay everything due
	path = fmt.Sprintf("/api/v1/client/bookings/%d/pay", bookingID)
	w, res = app.request(t, http.MethodPost, path, token, gin.H{"method": "card"})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)

	w, res = app.request(t, http.MethodPost, path, token, gin.H{"method": "card"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOTHING_DUE", res.Error.Code)

	// bookings list is scoped to the caller
	w, res = app.request(t, http.MethodGet, "/api/v1/client/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, res.Data["bookings"].([]interface{}), 1)

	// the seats are taken
	w, res = app.request(t, http.MethodGet, "/api/v1/schedule", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots = res.Data["slots"].([]interface{})
	assert.Equal(t, float64(5), slots[0].(map[string]interface{})["free_seats"])

	// notifications accumulated along the way
	w, res = app.request(t, http.MethodGet, "/api/v1/client/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, res.Data["notifications"])
}

func TestSubscriptionPaysForSlot(t *testing.T) {
	app := setupApp(t)

	w, res := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"login":     "dastan",
		"password":  "secret123",
		"full_name": "Dastan S",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token := res.Data["token"].(string)

	w, res = app.request(t, http.MethodPost, "/api/v1/client/subscriptions/purchase", token, gin.H{
		"visits":        5,
		"duration_days": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)
	sub := res.Data["subscription"].(map[string]interface{})
	subID := int64(sub["id"].(float64))

	path := fmt.Sprintf("/api/v1/client/schedule/%d/book", app.slotID)
	w, res = app.request(t, http.MethodPost, path, token, gin.H{
		"participants_count": 2,
		"subscription_id":    subID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", res)
	b := res.Data["booking"].(map[string]interface{})
	assert.Equal(t, "0", trimDecimal(b["total_sum"]))

	w, res = app.request(t, http.MethodGet, "/api/v1/client/subscriptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	subs := res.Data["subscriptions"].([]interface{})
	require.Len(t, subs, 1)
	assert.Equal(t, float64(3), subs[0].(map[string]interface{})["remaining_visits"])
}

func TestAuthorization(t *testing.T) {
	app := setupApp(t)

	// no token
	w, _ := app.request(t, http.MethodGet, "/api/v1/admin/bookings/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a client token cannot reach the front desk API
	_, res := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"login":     "aliya",
		"password":  "secret123",
		"full_name": "Aliya Reg",
	})
	token := res.Data["token"].(string)
	w, _ = app.request(t, http.MethodGet, "/api/v1/admin/bookings/1", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// and the admin token cannot use the self-service API
	w, _ = app.request(t, http.MethodGet, "/api/v1/client/bookings", app.adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestValidationErrorDetails(t *testing.T) {
	app := setupApp(t)

	// malformed body surfaces the binding failure in error.details
	w, res := app.request(t, http.MethodPost, "/api/v1/admin/bookings", app.adminToken, gin.H{
		"zone_id": "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, res.Error)
	assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	assert.NotEmpty(t, res.Error.Details)
}

// trimDecimal normalizes a JSON decimal (string or number) for comparison.
func trimDecimal(v interface{}) string {
	switch x := v.(type) {
	case string:
		return decimal.RequireFromString(x).String()
	case float64:
		return decimal.NewFromFloat(x).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
