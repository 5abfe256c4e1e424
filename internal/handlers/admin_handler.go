package handlers

import (
	"net/http"

	"milk_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console: staff registration, delivery
// assignment and reassignment, global statistics, WhatsApp broadcast.
type AdminHandler struct {
	personService   services.PersonService
	deliveryService services.DeliveryService
	statsService    services.StatsService
	searchService   services.SearchService
	notifier        services.Notifier
}

func NewAdminHandler(
	personService services.PersonService,
	deliveryService services.DeliveryService,
	statsService services.StatsService,
	searchService services.SearchService,
	notifier services.Notifier,
) *AdminHandler {
	return &AdminHandler{
		personService:   personService,
		deliveryService: deliveryService,
		statsService:    statsService,
		searchService:   searchService,
		notifier:        notifier,
	}
}

func (h *AdminHandler) CreateDeliveryPerson(c *gin.Context) {
	var input services.CreatePersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	person, err := h.personService.CreatePerson(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, person)
}

// CreateSimpleDeliveryPerson registers a person from the quick form that
// collects only name, phone, pincode and password.
func (h *AdminHandler) CreateSimpleDeliveryPerson(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Pincode  string `json:"pincode"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	person, err := h.personService.CreateSimplePerson(req.Name, req.Phone, req.Pincode, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, person)
}

func (h *AdminHandler) GetDeliveryPersons(c *gin.Context) {
	persons, err := h.personService.GetAllPersons()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, persons)
}

// ResetPassword generates a fresh credential and returns the plaintext
// exactly once, for out-of-band distribution to the delivery person.
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	newPassword, err := h.personService.ResetPassword(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Password reset successfully",
		"new_password": newPassword,
	})
}

func (h *AdminHandler) CreateDelivery(c *gin.Context) {
	var input services.CreateDeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	delivery, err := h.deliveryService.CreateDelivery(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, delivery)
}

func (h *AdminHandler) GetAllDeliveries(c *gin.Context) {
	deliveries, err := h.deliveryService.GetAllDeliveries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *AdminHandler) ReassignDelivery(c *gin.Context) {
	newPersonID := c.Query("new_person_id")
	if newPersonID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_person_id is required"})
		return
	}

	if err := h.deliveryService.Reassign(c.Param("id"), newPersonID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery reassigned successfully"})
}

func (h *AdminHandler) GlobalStats(c *gin.Context) {
	stats, err := h.statsService.GlobalStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Search answers the console's filtered lookup over deliveries and bot
// orders. All filters are optional query parameters.
func (h *AdminHandler) Search(c *gin.Context) {
	result, err := h.searchService.Search(services.SearchFilter{
		StartDate:        c.Query("start_date"),
		EndDate:          c.Query("end_date"),
		DeliveryPersonID: c.Query("delivery_person_id"),
		Pincode:          c.Query("pincode"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SendWhatsApp pushes a one-off text through the gateway, e.g. a broadcast
// to a customer or staff member.
func (h *AdminHandler) SendWhatsApp(c *gin.Context) {
	var req struct {
		Phone   string `json:"phone" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.notifier.SendTextMessage(req.Phone, req.Message); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send WhatsApp message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
