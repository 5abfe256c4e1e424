package services

import (
	"sync"
	"testing"
	"time"

	"milk_delivery/internal/database"
	"milk_delivery/internal/models"
	"milk_delivery/internal/redis"
	"milk_delivery/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared between
	// goroutines in the concurrency tests.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeSessions is an in-memory stand-in for the redis session store.
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*redis.Session
	byUser   map[string][]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: make(map[string]*redis.Session),
		byUser:   make(map[string][]string),
	}
}

func (f *fakeSessions) SetSession(tokenID string, session *redis.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tokenID] = session
	f.byUser[session.UserID] = append(f.byUser[session.UserID], tokenID)
	return nil
}

func (f *fakeSessions) GetSession(tokenID string) (*redis.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[tokenID], nil
}

func (f *fakeSessions) DeleteSession(tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenID)
	return nil
}

func (f *fakeSessions) RevokeUserSessions(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tokenID := range f.byUser[userID] {
		delete(f.sessions, tokenID)
	}
	delete(f.byUser, userID)
	return nil
}

// recordingNotifier captures outgoing WhatsApp texts.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) SendTextMessage(phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, phone+": "+message)
	return nil
}

type fixture struct {
	db              *gorm.DB
	personRepo      repository.DeliveryPersonRepository
	deliveryRepo    repository.DeliveryRepository
	sessions        *fakeSessions
	notifier        *recordingNotifier
	personService   PersonService
	deliveryService DeliveryService
	statsService    StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	personRepo := repository.NewDeliveryPersonRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	sessions := newFakeSessions()
	notifier := &recordingNotifier{}

	return &fixture{
		db:              db,
		personRepo:      personRepo,
		deliveryRepo:    deliveryRepo,
		sessions:        sessions,
		notifier:        notifier,
		personService:   NewPersonService(personRepo, sessions),
		deliveryService: NewDeliveryService(deliveryRepo, personRepo, notifier),
		statsService:    NewStatsService(deliveryRepo, personRepo),
	}
}

func (f *fixture) createPerson(t *testing.T, name, phone string) *models.DeliveryPerson {
	t.Helper()
	person, err := f.personService.CreateSimplePerson(name, phone, "560001", "secret123")
	require.NoError(t, err)
	return person
}

func (f *fixture) createDelivery(t *testing.T, personID, date string) *models.Delivery {
	t.Helper()
	delivery, err := f.deliveryService.CreateDelivery(CreateDeliveryInput{
		DeliveryPersonID: personID,
		CustomerName:     "Asha",
		CustomerAddress:  "12 MG Road",
		CustomerPhone:    "9811111111",
		CustomerWhatsApp: "9811111111",
		CustomerPincode:  "560001",
		ProductName:      "Full Cream Milk",
		ProductQuantity:  "2 x 500ml",
		DeliveryDate:     date,
	})
	require.NoError(t, err)
	return delivery
}

func sessionFor(userID string) *redis.Session {
	return &redis.Session{
		UserID:    userID,
		UserType:  string(models.UserTypeDeliveryPerson),
		CreatedAt: time.Now(),
	}
}

func personIdentity(id string) Identity {
	return Identity{UserID: id, UserType: models.UserTypeDeliveryPerson}
}

func adminIdentity() Identity {
	return Identity{UserID: "admin-1", UserType: models.UserTypeAdmin}
}
