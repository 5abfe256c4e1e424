package handlers

import (
	"net/http"

	"milk_delivery/internal/middleware"
	"milk_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

// DeliveryHandler serves the delivery-person side of the console: their
// assignment list, status updates and personal statistics.
type DeliveryHandler struct {
	deliveryService services.DeliveryService
	statsService    services.StatsService
	personService   services.PersonService
}

func NewDeliveryHandler(
	deliveryService services.DeliveryService,
	statsService services.StatsService,
	personService services.PersonService,
) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		statsService:    statsService,
		personService:   personService,
	}
}

// scopedPersonID resolves the :id path parameter and rejects delivery
// persons peeking at anyone but themselves. Admins may read any person.
func scopedPersonID(c *gin.Context) (string, bool) {
	identity, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return "", false
	}

	personID := c.Param("id")
	if !identity.IsAdmin() && identity.UserID != personID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only access your own records"})
		return "", false
	}
	return personID, true
}

func (h *DeliveryHandler) GetProfile(c *gin.Context) {
	personID, ok := scopedPersonID(c)
	if !ok {
		return
	}

	person, err := h.personService.GetPersonByID(personID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (h *DeliveryHandler) GetDeliveries(c *gin.Context) {
	personID, ok := scopedPersonID(c)
	if !ok {
		return
	}

	deliveries, err := h.deliveryService.GetDeliveriesForPerson(personID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *DeliveryHandler) GetStats(c *gin.Context) {
	personID, ok := scopedPersonID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.PersonStats(personID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateStatus finalizes a delivery as delivered or not_delivered.
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var input services.StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	delivery, err := h.deliveryService.UpdateStatus(identity, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, delivery)
}
