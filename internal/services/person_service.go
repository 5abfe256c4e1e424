package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"

	"github.com/google/uuid"
)

type CreatePersonInput struct {
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Address          string   `json:"address"`
	AadharNumber     string   `json:"aadhar_number"`
	BikeNumber       string   `json:"bike_number"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	BloodGroup       string   `json:"blood_group"`
	Pincode          string   `json:"pincode"`
	TimeOfWork       string   `json:"time_of_work"`
	Password         string   `json:"password"`
	SelectedPincodes []string `json:"selected_pincodes"`
}

type PersonService interface {
	CreatePerson(input CreatePersonInput) (*models.DeliveryPerson, error)
	// CreateSimplePerson registers a person from the minimal profile the
	// admin console's quick form collects; other fields get placeholders.
	CreateSimplePerson(name, phone, pincode, password string) (*models.DeliveryPerson, error)
	GetPersonByID(id string) (*models.DeliveryPerson, error)
	GetAllPersons() ([]models.DeliveryPerson, error)
	// ResetPassword replaces the credential with a random one and returns
	// the plaintext exactly once for out-of-band distribution.
	ResetPassword(personID string) (string, error)
}

type personService struct {
	personRepo repository.DeliveryPersonRepository
	sessions   SessionRevoker
}

// SessionRevoker invalidates the live sessions of a user whose credential
// changed.
type SessionRevoker interface {
	RevokeUserSessions(userID string) error
}

func NewPersonService(personRepo repository.DeliveryPersonRepository, sessions SessionRevoker) PersonService {
	return &personService{personRepo: personRepo, sessions: sessions}
}

func (s *personService) CreatePerson(input CreatePersonInput) (*models.DeliveryPerson, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.Pincode) == "" ||
		input.Password == "" {
		return nil, fmt.Errorf("%w: name, phone, pincode and password are required", apperr.Invalid)
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	selected := input.SelectedPincodes
	if len(selected) == 0 {
		selected = []string{input.Pincode}
	}

	person := &models.DeliveryPerson{
		ID:               uuid.NewString(),
		Name:             input.Name,
		Phone:            input.Phone,
		Address:          input.Address,
		AadharNumber:     input.AadharNumber,
		BikeNumber:       input.BikeNumber,
		Age:              input.Age,
		Gender:           input.Gender,
		BloodGroup:       input.BloodGroup,
		Pincode:          input.Pincode,
		TimeOfWork:       input.TimeOfWork,
		SelectedPincodes: selected,
		PasswordHash:     passwordHash,
	}

	if err := s.personRepo.Create(person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *personService) CreateSimplePerson(name, phone, pincode, password string) (*models.DeliveryPerson, error) {
	return s.CreatePerson(CreatePersonInput{
		Name:         name,
		Phone:        phone,
		Pincode:      pincode,
		Password:     password,
		Address:      "Not provided",
		AadharNumber: "Not provided",
		BikeNumber:   "Not provided",
		Age:          25,
		Gender:       "Not specified",
		BloodGroup:   "Not specified",
		TimeOfWork:   "Not specified",
	})
}

func (s *personService) GetPersonByID(id string) (*models.DeliveryPerson, error) {
	return s.personRepo.GetByID(id)
}

func (s *personService) GetAllPersons() ([]models.DeliveryPerson, error) {
	return s.personRepo.GetAll()
}

func (s *personService) ResetPassword(personID string) (string, error) {
	newPassword, err := generatePassword(8)
	if err != nil {
		return "", err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return "", err
	}

	if err := s.personRepo.UpdatePasswordHash(personID, passwordHash); err != nil {
		return "", err
	}

	// Live tokens of the old credential stop working immediately.
	if err := s.sessions.RevokeUserSessions(personID); err != nil {
		return "", err
	}

	return newPassword, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}
