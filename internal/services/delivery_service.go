package services

import (
	"fmt"
	"log"
	"strings"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"

	"github.com/google/uuid"
)

type CreateDeliveryInput struct {
	DeliveryPersonID string `json:"delivery_person_id"`
	CustomerName     string `json:"customer_name"`
	CustomerAddress  string `json:"customer_address"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerWhatsApp string `json:"customer_whatsapp"`
	CustomerPincode  string `json:"customer_pincode"`
	ProductName      string `json:"product_name"`
	ProductQuantity  string `json:"product_quantity"`
	DeliveryDate     string `json:"delivery_date"` // YYYY-MM-DD
}

type StatusUpdateInput struct {
	Status   models.DeliveryStatus `json:"status"`
	Reason   string                `json:"reason"`
	Comments string                `json:"comments"`
}

// Notifier sends a short out-of-band message to a delivery person.
type Notifier interface {
	SendTextMessage(phone, message string) error
}

type DeliveryService interface {
	CreateDelivery(input CreateDeliveryInput) (*models.Delivery, error)
	GetDeliveryByID(id string) (*models.Delivery, error)
	GetDeliveriesForPerson(personID string) ([]models.Delivery, error)
	GetAllDeliveries() ([]models.Delivery, error)
	// UpdateStatus finalizes a pending delivery on behalf of its current
	// owner (or an admin acting for them).
	UpdateStatus(caller Identity, deliveryID string, input StatusUpdateInput) (*models.Delivery, error)
	// Reassign moves a pending delivery to another person.
	Reassign(deliveryID, newPersonID string) error
}

type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	personRepo   repository.DeliveryPersonRepository
	notifier     Notifier
}

func NewDeliveryService(
	deliveryRepo repository.DeliveryRepository,
	personRepo repository.DeliveryPersonRepository,
	notifier Notifier,
) DeliveryService {
	return &deliveryService{
		deliveryRepo: deliveryRepo,
		personRepo:   personRepo,
		notifier:     notifier,
	}
}

func validateCreateDelivery(input CreateDeliveryInput) error {
	required := map[string]string{
		"delivery_person_id": input.DeliveryPersonID,
		"customer_name":      input.CustomerName,
		"customer_address":   input.CustomerAddress,
		"customer_phone":     input.CustomerPhone,
		"customer_pincode":   input.CustomerPincode,
		"product_name":       input.ProductName,
		"product_quantity":   input.ProductQuantity,
		"delivery_date":      input.DeliveryDate,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", apperr.Invalid, field)
		}
	}
	return nil
}

func (s *deliveryService) CreateDelivery(input CreateDeliveryInput) (*models.Delivery, error) {
	if err := validateCreateDelivery(input); err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByID(input.DeliveryPersonID)
	if err != nil {
		return nil, err
	}

	delivery := &models.Delivery{
		ID:               uuid.NewString(),
		DeliveryPersonID: person.ID,
		CustomerName:     input.CustomerName,
		CustomerAddress:  input.CustomerAddress,
		CustomerPhone:    input.CustomerPhone,
		CustomerWhatsApp: input.CustomerWhatsApp,
		CustomerPincode:  input.CustomerPincode,
		ProductName:      input.ProductName,
		ProductQuantity:  input.ProductQuantity,
		DeliveryDate:     input.DeliveryDate,
		Status:           models.StatusPending,
	}

	if err := s.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}

	s.notify(person, fmt.Sprintf("New delivery for %s on %s: %s x %s",
		delivery.CustomerName, delivery.DeliveryDate, delivery.ProductName, delivery.ProductQuantity))

	return delivery, nil
}

func (s *deliveryService) GetDeliveryByID(id string) (*models.Delivery, error) {
	return s.deliveryRepo.GetByID(id)
}

func (s *deliveryService) GetDeliveriesForPerson(personID string) ([]models.Delivery, error) {
	if _, err := s.personRepo.GetByID(personID); err != nil {
		return nil, err
	}
	return s.deliveryRepo.GetByPersonID(personID)
}

func (s *deliveryService) GetAllDeliveries() ([]models.Delivery, error) {
	return s.deliveryRepo.GetAll()
}

// UpdateStatus checks, in order: the delivery exists, the caller owns it,
// it is still pending, the payload is well-formed. The order keeps the most
// actionable error first and hides state details from non-owners.
func (s *deliveryService) UpdateStatus(caller Identity, deliveryID string, input StatusUpdateInput) (*models.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && caller.UserID != delivery.DeliveryPersonID {
		return nil, fmt.Errorf("%w: delivery is assigned to someone else", apperr.Forbidden)
	}

	if delivery.Status.Terminal() {
		return nil, fmt.Errorf("%w: delivery already finalized", apperr.Conflict)
	}

	if !input.Status.Valid() || input.Status == models.StatusPending {
		return nil, fmt.Errorf("%w: status must be delivered or not_delivered", apperr.Invalid)
	}

	reason := input.Reason
	switch input.Status {
	case models.StatusNotDelivered:
		if !models.NotDeliveredReason(reason).Valid() {
			return nil, fmt.Errorf("%w: a valid reason is required for not_delivered", apperr.Invalid)
		}
	case models.StatusDelivered:
		// Reason carries no meaning for a successful delivery.
		reason = ""
	}

	// Admins act for whoever owns the delivery at write time; everyone else
	// must still be the owner when the write lands.
	ownerGuard := caller.UserID
	if caller.IsAdmin() {
		ownerGuard = ""
	}

	ok, err := s.deliveryRepo.FinalizeStatus(deliveryID, input.Status, reason, input.Comments, ownerGuard)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race. Re-read to tell a concurrent finalization apart
		// from a reassignment that moved the delivery to someone else.
		current, err := s.deliveryRepo.GetByID(deliveryID)
		if err != nil {
			return nil, err
		}
		if !caller.IsAdmin() && current.DeliveryPersonID != caller.UserID {
			return nil, fmt.Errorf("%w: delivery is assigned to someone else", apperr.Forbidden)
		}
		return nil, fmt.Errorf("%w: delivery already finalized", apperr.Conflict)
	}

	return s.deliveryRepo.GetByID(deliveryID)
}

func (s *deliveryService) Reassign(deliveryID, newPersonID string) error {
	delivery, err := s.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return err
	}

	person, err := s.personRepo.GetByID(newPersonID)
	if err != nil {
		return err
	}

	if delivery.Status.Terminal() {
		return fmt.Errorf("%w: delivery already finalized", apperr.Conflict)
	}

	// Reassigning to the current owner is a no-op success.
	if delivery.DeliveryPersonID == newPersonID {
		return nil
	}

	ok, err := s.deliveryRepo.Reassign(deliveryID, newPersonID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: delivery already finalized", apperr.Conflict)
	}

	s.notify(person, fmt.Sprintf("Delivery for %s on %s was assigned to you",
		delivery.CustomerName, delivery.DeliveryDate))

	return nil
}

// notify is best effort: delivery state never depends on the gateway.
func (s *deliveryService) notify(person *models.DeliveryPerson, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendTextMessage(person.Phone, message); err != nil {
		log.Printf("WhatsApp notification to %s failed: %v", person.Phone, err)
	}
}
