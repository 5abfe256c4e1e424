package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"milk_delivery/internal/database"
	"milk_delivery/internal/middleware"
	"milk_delivery/internal/models"
	"milk_delivery/internal/redis"
	"milk_delivery/internal/repository"
	"milk_delivery/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memorySessions satisfies services.SessionStore without a redis server.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*redis.Session
	byUser   map[string][]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{
		sessions: make(map[string]*redis.Session),
		byUser:   make(map[string][]string),
	}
}

func (m *memorySessions) SetSession(tokenID string, session *redis.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tokenID] = session
	m.byUser[session.UserID] = append(m.byUser[session.UserID], tokenID)
	return nil
}

func (m *memorySessions) GetSession(tokenID string) (*redis.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[tokenID], nil
}

func (m *memorySessions) DeleteSession(tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenID)
	return nil
}

func (m *memorySessions) RevokeUserSessions(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tokenID := range m.byUser[userID] {
		delete(m.sessions, tokenID)
	}
	delete(m.byUser, userID)
	return nil
}

type nullNotifier struct{}

func (nullNotifier) SendTextMessage(phone, message string) error { return nil }

type apiFixture struct {
	router          *gin.Engine
	personService   services.PersonService
	deliveryService services.DeliveryService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedAdmin(db, "admin", "admin123"))

	adminRepo := repository.NewAdminRepository(db)
	personRepo := repository.NewDeliveryPersonRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	sessions := newMemorySessions()

	authService := services.NewAuthService(adminRepo, personRepo, sessions, "test-secret", time.Hour)
	personService := services.NewPersonService(personRepo, sessions)
	deliveryService := services.NewDeliveryService(deliveryRepo, personRepo, nullNotifier{})
	statsService := services.NewStatsService(deliveryRepo, personRepo)

	authHandler := NewAuthHandler(authService)
	deliveryHandler := NewDeliveryHandler(deliveryService, statsService, personService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(authService))
	authed.GET("/delivery-persons/:id/profile", deliveryHandler.GetProfile)
	authed.GET("/delivery-persons/:id/deliveries", deliveryHandler.GetDeliveries)
	authed.GET("/delivery-persons/:id/stats", deliveryHandler.GetStats)
	authed.PUT("/deliveries/:id/status", deliveryHandler.UpdateStatus)

	return &apiFixture{
		router:          router,
		personService:   personService,
		deliveryService: deliveryService,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

func (f *apiFixture) createPerson(t *testing.T, name, phone string) *models.DeliveryPerson {
	t.Helper()
	person, err := f.personService.CreateSimplePerson(name, phone, "560001", "secret123")
	require.NoError(t, err)
	return person
}

func (f *apiFixture) createDelivery(t *testing.T, personID string) *models.Delivery {
	t.Helper()
	delivery, err := f.deliveryService.CreateDelivery(services.CreateDeliveryInput{
		DeliveryPersonID: personID,
		CustomerName:     "Asha",
		CustomerAddress:  "12 MG Road",
		CustomerPhone:    "9811111111",
		CustomerPincode:  "560001",
		ProductName:      "Full Cream Milk",
		ProductQuantity:  "2 x 500ml",
		DeliveryDate:     "2024-06-01",
	})
	require.NoError(t, err)
	return delivery
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")

	w := f.do(t, http.MethodGet, "/api/delivery-persons/"+person.ID+"/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/delivery-persons/"+person.ID+"/stats", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateStatusEndpoint_Delivered(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	delivery := f.createDelivery(t, person.ID)
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", token, gin.H{
		"status":   "delivered",
		"comments": "left at the door",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Delivery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.Equal(t, "left at the door", updated.Comments)
}

func TestUpdateStatusEndpoint_InvalidReason(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	delivery := f.createDelivery(t, person.ID)
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", token, gin.H{
		"status": "not_delivered",
		"reason": "Dog ate the bottle",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusEndpoint_WrongOwner(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createPerson(t, "Ravi", "9000000001")
	f.createPerson(t, "Sita", "9000000002")
	delivery := f.createDelivery(t, owner.ID)
	otherToken := f.login(t, "9000000002", "secret123")

	w := f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", otherToken, gin.H{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStatusEndpoint_UnknownDelivery(t *testing.T) {
	f := newAPIFixture(t)
	f.createPerson(t, "Ravi", "9000000001")
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodPut, "/api/deliveries/no-such-id/status", token, gin.H{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusEndpoint_AlreadyFinalized(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	delivery := f.createDelivery(t, person.ID)
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", token, gin.H{
		"status": "delivered",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", token, gin.H{
		"status": "not_delivered",
		"reason": "Bad Weather",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStatsEndpoint_ScopedToCaller(t *testing.T) {
	f := newAPIFixture(t)
	p1 := f.createPerson(t, "Ravi", "9000000001")
	p2 := f.createPerson(t, "Sita", "9000000002")
	f.createDelivery(t, p1.ID)
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodGet, "/api/delivery-persons/"+p1.ID+"/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats services.DeliveryStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalDeliveries)
	assert.Equal(t, 1, stats.PendingDeliveries)

	// Another person's stats are off limits.
	w = f.do(t, http.MethodGet, "/api/delivery-persons/"+p2.ID+"/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may read anyone's.
	adminToken := f.login(t, "admin", "admin123")
	w = f.do(t, http.MethodGet, "/api/delivery-persons/"+p2.ID+"/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeliveriesEndpoint_ListsOwnAssignments(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	f.createDelivery(t, person.ID)
	f.createDelivery(t, person.ID)
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodGet, "/api/delivery-persons/"+person.ID+"/deliveries", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deliveries []models.Delivery
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deliveries))
	assert.Len(t, deliveries, 2)
}

func TestProfileEndpoint_HidesPasswordHash(t *testing.T) {
	f := newAPIFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	token := f.login(t, "9000000001", "secret123")

	w := f.do(t, http.MethodGet, "/api/delivery-persons/"+person.ID+"/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ravi", body["name"])
	assert.NotContains(t, body, "password_hash")
}
