package handlers

import (
	"net/http"

	"milk_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the reference data the ordering bot maintains.
type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func activeOrDefault(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	category, err := h.catalogService.CreateCategory(req.Name, req.Description, activeOrDefault(req.IsActive))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogService.UpdateCategory(c.Param("id"), req.Name, req.Description, activeOrDefault(req.IsActive)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (h *CatalogHandler) CreateProductType(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		CategoryID  string `json:"category_id"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	productType, err := h.catalogService.CreateProductType(req.Name, req.CategoryID, req.Description, activeOrDefault(req.IsActive))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productType)
}

func (h *CatalogHandler) GetProductTypes(c *gin.Context) {
	productTypes, err := h.catalogService.GetProductTypes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productTypes)
}

func (h *CatalogHandler) CreateCharacteristic(c *gin.Context) {
	var req struct {
		Name          string `json:"name"`
		ProductTypeID string `json:"product_type_id"`
		Description   string `json:"description"`
		IsActive      *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	characteristic, err := h.catalogService.CreateCharacteristic(req.Name, req.ProductTypeID, req.Description, activeOrDefault(req.IsActive))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, characteristic)
}

func (h *CatalogHandler) GetCharacteristics(c *gin.Context) {
	characteristics, err := h.catalogService.GetCharacteristics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, characteristics)
}

func (h *CatalogHandler) CreateSize(c *gin.Context) {
	var req struct {
		Name             string  `json:"name"`
		Value            string  `json:"value"`
		CharacteristicID string  `json:"characteristic_id"`
		Price            float64 `json:"price"`
		IsActive         *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	size, err := h.catalogService.CreateSize(req.Name, req.Value, req.CharacteristicID, req.Price, activeOrDefault(req.IsActive))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, size)
}

func (h *CatalogHandler) GetSizes(c *gin.Context) {
	sizes, err := h.catalogService.GetSizes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}

func (h *CatalogHandler) CreatePinCode(c *gin.Context) {
	var input services.PinCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	pinCode, err := h.catalogService.CreatePinCode(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pinCode)
}

func (h *CatalogHandler) GetPinCodes(c *gin.Context) {
	pinCodes, err := h.catalogService.GetPinCodes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pinCodes)
}

func (h *CatalogHandler) UpdatePinCode(c *gin.Context) {
	var input services.PinCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogService.UpdatePinCode(c.Param("id"), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pin code updated successfully"})
}

func (h *CatalogHandler) GetCustomers(c *gin.Context) {
	customers, err := h.catalogService.GetCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CatalogHandler) GetOrders(c *gin.Context) {
	orders, err := h.catalogService.GetOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
