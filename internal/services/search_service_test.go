package services

import (
	"testing"

	"milk_delivery/internal/apperr"
	"milk_delivery/internal/models"
	"milk_delivery/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFixture(t *testing.T) (*fixture, SearchService) {
	t.Helper()
	f := newFixture(t)
	search := NewSearchService(f.deliveryRepo, repository.NewCatalogRepository(f.db))
	return f, search
}

func (f *fixture) createOrder(t *testing.T, orderNumber, deliveryDate string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Order{
		ID:           uuid.NewString(),
		OrderNumber:  orderNumber,
		CustomerID:   uuid.NewString(),
		DeliveryDate: deliveryDate,
	}).Error)
}

func TestSearch_NoFiltersReturnsEverything(t *testing.T) {
	f, search := newSearchFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	f.createDelivery(t, person.ID, "2024-06-01")
	f.createOrder(t, "ORD-1", "2024-06-01")

	result, err := search.Search(SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Deliveries, 1)
	assert.Len(t, result.Orders, 1)
}

func TestSearch_DateRange(t *testing.T) {
	f, search := newSearchFixture(t)
	person := f.createPerson(t, "Ravi", "9000000001")
	f.createDelivery(t, person.ID, "2024-06-01")
	f.createDelivery(t, person.ID, "2024-06-15")
	f.createDelivery(t, person.ID, "2024-07-01")
	f.createOrder(t, "ORD-1", "2024-06-10")
	f.createOrder(t, "ORD-2", "2024-07-10")

	result, err := search.Search(SearchFilter{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
	})
	require.NoError(t, err)
	assert.Len(t, result.Deliveries, 2)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, "ORD-1", result.Orders[0].OrderNumber)
}

func TestSearch_ByPersonAndPincode(t *testing.T) {
	f, search := newSearchFixture(t)
	p1 := f.createPerson(t, "Ravi", "9000000001")
	p2 := f.createPerson(t, "Sita", "9000000002")
	f.createDelivery(t, p1.ID, "2024-06-01")
	f.createDelivery(t, p2.ID, "2024-06-01")

	result, err := search.Search(SearchFilter{DeliveryPersonID: p1.ID})
	require.NoError(t, err)
	require.Len(t, result.Deliveries, 1)
	assert.Equal(t, p1.ID, result.Deliveries[0].DeliveryPersonID)

	result, err = search.Search(SearchFilter{Pincode: "560001"})
	require.NoError(t, err)
	assert.Len(t, result.Deliveries, 2)

	result, err = search.Search(SearchFilter{Pincode: "999999"})
	require.NoError(t, err)
	assert.Empty(t, result.Deliveries)
}

func TestSearch_DateRangeValidation(t *testing.T) {
	_, search := newSearchFixture(t)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"start without end", "2024-06-01", ""},
		{"end without start", "", "2024-06-30"},
		{"malformed start", "June 1st", "2024-06-30"},
		{"end before start", "2024-06-30", "2024-06-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := search.Search(SearchFilter{StartDate: tc.start, EndDate: tc.end})
			assert.ErrorIs(t, err, apperr.Invalid)
		})
	}
}
