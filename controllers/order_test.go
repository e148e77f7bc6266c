package controllers

import (
	"net/http"
	"testing"

	"mandorpro-backend/models"
	"mandorpro-backend/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRouter(role, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Set("userId", userID)
	})
	r.POST("/api/orders", CreateOrder)
	r.GET("/api/orders", GetOrders)
	r.PUT("/api/orders/:id", UpdateOrder)
	return r
}

func TestPlacingOrderCreatesAppointment(t *testing.T) {
	db := setupTestDB(t)

	customer := models.User{Email: "ratna@example.com", Phone: "+628123", Name: "Ibu Ratna", Password: "rahasia123"}
	require.NoError(t, db.Create(&customer).Error)
	service := models.Service{Name: "Perbaikan Kebocoran", Price: 150000}
	require.NoError(t, db.Create(&service).Error)

	r := setupOrderRouter(models.RoleCustomer, customer.ID.String())

	w := jsonRequest(t, r, http.MethodPost, "/api/orders", gin.H{
		"serviceId": service.ID,
		"date":      "2025-12-28",
		"time":      "10:00",
		"address":   "Jl. Merpati No. 12",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	decodeBody(t, w, &order)
	assert.Equal(t, scheduling.OrderNeedValidation, order.Status)
	assert.Equal(t, "Ibu Ratna", order.CustomerName)
	assert.Equal(t, "Perbaikan Kebocoran", order.ServiceName)
	assert.NotEmpty(t, order.OrderNo)

	// No separate write: the order itself is the appointment.
	appts, err := listAppointments(db)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, order.ID, appts[0].ID)
	assert.Equal(t, "2025-12-28", appts[0].Date)
	assert.Equal(t, scheduling.StatusAwaitingValidation, appts[0].Status)
}

func TestOrdersScopedByRole(t *testing.T) {
	db := setupTestDB(t)

	a := models.User{Email: "a@example.com", Phone: "+62811", Name: "A", Password: "rahasia123"}
	b := models.User{Email: "b@example.com", Phone: "+62812", Name: "B", Password: "rahasia123"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	service := models.Service{Name: "Cat Ulang", Price: 500000}
	require.NoError(t, db.Create(&service).Error)

	for _, u := range []models.User{a, b} {
		r := setupOrderRouter(models.RoleCustomer, u.ID.String())
		w := jsonRequest(t, r, http.MethodPost, "/api/orders", gin.H{
			"serviceId": service.ID,
			"date":      "2025-12-20",
			"time":      "08:00",
			"address":   "Jl. Melati No. 1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := jsonRequest(t, setupOrderRouter(models.RoleCustomer, a.ID.String()), http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var own []models.Order
	decodeBody(t, w, &own)
	require.Len(t, own, 1)
	assert.Equal(t, a.ID, own[0].CustomerID)

	w = jsonRequest(t, setupOrderRouter(models.RoleAdmin, ""), http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Order
	decodeBody(t, w, &all)
	assert.Len(t, all, 2)
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, scheduling.OrderNeedValidation)
	r := setupOrderRouter(models.RoleAdmin, "")

	w := jsonRequest(t, r, http.MethodPut, "/api/orders/"+order.ID.String(), gin.H{
		"status": "FINISHED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, scheduling.OrderNeedValidation, stored.Status)
}

func TestUpdateOrderAssignsMandor(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, scheduling.OrderNeedValidation)
	mandor := seedMandor(t, db)
	r := setupOrderRouter(models.RoleAdmin, "")

	w := jsonRequest(t, r, http.MethodPut, "/api/orders/"+order.ID.String(), gin.H{
		"status":   scheduling.OrderOnProgress,
		"mandorId": mandor.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, scheduling.OrderOnProgress, stored.Status)
	require.NotNil(t, stored.MandorID)
	assert.Equal(t, mandor.ID, *stored.MandorID)
}
