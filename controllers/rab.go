// controllers/rab.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RabItemInput defines the structure for one budget line item
type RabItemInput struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"min=1"`
	UnitPrice float64 `json:"unitPrice" binding:"min=0"`
}

// CreateRabInput defines the expected JSON structure for creating a proposal.
// There is deliberately no total field: the total is always derived from the
// items, never accepted from the client.
type CreateRabInput struct {
	ProjectName string         `json:"projectName" binding:"required"`
	Date        *time.Time     `json:"date"`
	OrderID     *uuid.UUID     `json:"orderId"`
	MandorID    *uuid.UUID     `json:"mandorId"` // admin only; mandors are resolved from their login
	Notes       string         `json:"notes"`
	Items       []RabItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateRabInput defines the expected JSON structure for updating a proposal
type UpdateRabInput struct {
	ProjectName *string         `json:"projectName"`
	Date        *time.Time      `json:"date"`
	Notes       *string         `json:"notes"`
	Items       *[]RabItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

type UpdateRabStatusInput struct {
	Status string `json:"status" binding:"required,oneof=submitted approved rejected"`
}

func rabItemsTotal(items []RabItemInput) (float64, []models.RabItem) {
	var total float64
	out := make([]models.RabItem, 0, len(items))
	for _, item := range items {
		lineTotal := float64(item.Quantity) * item.UnitPrice
		total += lineTotal
		out = append(out, models.RabItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
	}
	return total, out
}

// resolveMandor finds the roster entry for the authenticated mandor, or, for
// admins, takes the explicit id from the request.
func resolveMandor(c *gin.Context, explicit *uuid.UUID) (*models.Mandor, bool) {
	role, _ := c.Get("role")

	if role == models.RoleAdmin {
		if explicit == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "mandorId is required for admins")
			return nil, false
		}
		var mandor models.Mandor
		if err := config.DB.First(&mandor, "id = ?", *explicit).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Mandor not found")
			return nil, false
		}
		return &mandor, true
	}

	userID, _ := c.Get("userId")
	var mandor models.Mandor
	if err := config.DB.First(&mandor, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusForbidden, "No roster entry linked to this account")
		return nil, false
	}
	return &mandor, true
}

// CreateRab creates a budget proposal with its line items
func CreateRab(c *gin.Context) {
	var input CreateRabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	mandor, ok := resolveMandor(c, input.MandorID)
	if !ok {
		return
	}

	total, items := rabItemsTotal(input.Items)

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	rab := models.Rab{
		MandorID:    mandor.ID,
		OrderID:     input.OrderID,
		ProjectName: input.ProjectName,
		Date:        date,
		Notes:       input.Notes,
		Status:      models.RabDraft,
		Total:       total,
		Items:       items,
	}

	if err := config.DB.Create(&rab).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create RAB")
		return
	}

	c.JSON(http.StatusCreated, rab)
}

// GetRabs lists proposals: admins see all, mandors their own
func GetRabs(c *gin.Context) {
	role, _ := c.Get("role")

	query := config.DB.Preload("Items").Preload("Mandor").Order("created_at")

	if role != models.RoleAdmin {
		mandor, ok := resolveMandor(c, nil)
		if !ok {
			return
		}
		query = query.Where("mandor_id = ?", mandor.ID)
	}

	var rabs []models.Rab
	if err := query.Find(&rabs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve RABs")
		return
	}

	c.JSON(http.StatusOK, rabs)
}

// GetRab retrieves one proposal by ID
func GetRab(c *gin.Context) {
	rabUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RAB ID format")
		return
	}

	var rab models.Rab
	if err := config.DB.Preload("Items").Preload("Mandor").First(&rab, "id = ?", rabUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "RAB not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		mandor, ok := resolveMandor(c, nil)
		if !ok {
			return
		}
		if rab.MandorID != mandor.ID {
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
	}

	c.JSON(http.StatusOK, rab)
}

// UpdateRab updates a proposal. When the items change they are replaced
// wholesale and the total is recomputed from the new set inside the same
// transaction, so the stored total can never drift from the lines.
func UpdateRab(c *gin.Context) {
	rabUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RAB ID format")
		return
	}

	var input UpdateRabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var rab models.Rab
	if err := tx.Preload("Items").First(&rab, "id = ?", rabUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "RAB not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		mandor, ok := resolveMandor(c, nil)
		if !ok {
			tx.Rollback()
			return
		}
		if rab.MandorID != mandor.ID {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
	}

	if input.ProjectName != nil {
		rab.ProjectName = *input.ProjectName
	}
	if input.Date != nil {
		rab.Date = *input.Date
	}
	if input.Notes != nil {
		rab.Notes = *input.Notes
	}

	if input.Items != nil {
		if err := tx.Where("rab_id = ?", rab.ID).Delete(&models.RabItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		total, items := rabItemsTotal(*input.Items)
		for i := range items {
			items[i].RabID = rab.ID
		}
		rab.Items = items
		rab.Total = total
	}

	if err := tx.Save(&rab).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update RAB")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, rab)
}

// UpdateRabStatus drives the approval workflow: mandors submit their own
// drafts, admins approve or reject.
func UpdateRabStatus(c *gin.Context) {
	rabUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RAB ID format")
		return
	}

	var input UpdateRabStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var rab models.Rab
	if err := config.DB.First(&rab, "id = ?", rabUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "RAB not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		mandor, ok := resolveMandor(c, nil)
		if !ok {
			return
		}
		if rab.MandorID != mandor.ID || input.Status != models.RabSubmitted {
			utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
	}

	if err := config.DB.Model(&rab).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update RAB status")
		return
	}

	rab.Status = input.Status
	c.JSON(http.StatusOK, rab)
}

// DeleteRab soft deletes a proposal
func DeleteRab(c *gin.Context) {
	rabUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid RAB ID format")
		return
	}

	result := config.DB.Delete(&models.Rab{}, "id = ?", rabUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete RAB")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "RAB not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RAB deleted successfully"})
}
