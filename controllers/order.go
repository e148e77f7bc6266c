// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/scheduling"
	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Date      string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string    `json:"time" binding:"required"`
	Address   string    `json:"address" binding:"required"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
}

type UpdateOrderInput struct {
	Status     *string    `json:"status" binding:"omitempty,oneof=NEED_VALIDATION ON_PROGRESS DONE CANCEL"`
	MandorID   *uuid.UUID `json:"mandorId"`
	Date       *string    `json:"date"`
	Time       *string    `json:"time"`
	Address    *string    `json:"address"`
	Notes      *string    `json:"notes"`
	ReceiptURL *string    `json:"receiptUrl"`
}

// CreateOrder places a customer booking. The created order is what shows up on
// the scheduling calendar as an appointment awaiting validation.
func CreateOrder(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	phone := input.Phone
	if phone == "" {
		phone = user.Phone
	}

	order := models.Order{
		OrderNo:      "ORD-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		CustomerID:   user.ID,
		CustomerName: user.Name,
		ServiceID:    service.ID,
		ServiceName:  service.Name,
		Date:         date,
		Time:         input.Time,
		Address:      input.Address,
		Phone:        phone,
		Status:       scheduling.OrderNeedValidation,
		Notes:        input.Notes,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrders lists orders scoped by role: admins see everything, customers their
// own bookings, mandors the jobs assigned to them.
func GetOrders(c *gin.Context) {
	role, _ := c.Get("role")
	userID, _ := c.Get("userId")

	query := config.DB.Preload("Mandor").Order("created_at")

	switch role {
	case models.RoleAdmin:
		// no extra scope
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", userID)
	case models.RoleMandor:
		var mandor models.Mandor
		if err := config.DB.First(&mandor, "user_id = ?", userID).Error; err != nil {
			c.JSON(http.StatusOK, []models.Order{})
			return
		}
		query = query.Where("mandor_id = ?", mandor.ID)
	default:
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder retrieves one order, applying the same role scoping as GetOrders.
func GetOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Preload("Mandor").First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	role, _ := c.Get("role")
	userID, _ := c.Get("userId")

	switch role {
	case models.RoleAdmin:
	case models.RoleCustomer:
		if order.CustomerID.String() != userID {
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
	case models.RoleMandor:
		var mandor models.Mandor
		if err := config.DB.First(&mandor, "user_id = ?", userID).Error; err != nil ||
			order.MandorID == nil || *order.MandorID != mandor.ID {
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrder applies a partial update. Assigning a mandor or moving the status
// dispatches the matching notifications after the write commits.
func UpdateOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", orderUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	statusChanged := false
	mandorAssigned := false

	if input.Status != nil && *input.Status != order.Status {
		order.Status = *input.Status
		statusChanged = true
	}
	if input.MandorID != nil {
		var mandor models.Mandor
		if err := config.DB.First(&mandor, "id = ?", *input.MandorID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Mandor not found")
			return
		}
		if order.MandorID == nil || *order.MandorID != mandor.ID {
			mandorAssigned = true
		}
		order.MandorID = input.MandorID
	}
	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		order.Date = date
	}
	if input.Time != nil {
		order.Time = *input.Time
	}
	if input.Address != nil {
		order.Address = *input.Address
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.ReceiptURL != nil {
		order.ReceiptURL = *input.ReceiptURL
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	dispatchOrderNotifications(order, statusChanged, mandorAssigned)

	c.JSON(http.StatusOK, order)
}

// DeleteOrder soft deletes an order (the dashboard asks for confirmation first)
func DeleteOrder(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	result := config.DB.Delete(&models.Order{}, "id = ?", orderUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func dispatchOrderNotifications(order models.Order, statusChanged, mandorAssigned bool) {
	if mandorAssigned && order.MandorID != nil {
		var mandor models.Mandor
		if err := config.DB.First(&mandor, "id = ?", *order.MandorID).Error; err == nil {
			if notifier != nil {
				notifier.NotifyAssignment(order, mandor)
			}
			if pushPool != nil {
				pushPool.DispatchAssignment(order.ID, mandor.ID)
			}
		}
	}
	if statusChanged && notifier != nil {
		notifier.NotifyStatusChange(order)
	}
}
