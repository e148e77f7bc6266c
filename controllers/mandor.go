// controllers/mandor.go
package controllers

import (
	"errors"
	"net/http"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateMandorInput struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone" binding:"required"`
	Skill    string     `json:"skill"`
	Address  string     `json:"address"`
	PhotoURL string     `json:"photoUrl"`
	UserID   *uuid.UUID `json:"userId"`
}

type UpdateMandorInput struct {
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Skill    *string    `json:"skill"`
	Address  *string    `json:"address"`
	PhotoURL *string    `json:"photoUrl"`
	UserID   *uuid.UUID `json:"userId"`
	IsActive *bool      `json:"isActive"`
}

// CreateMandor adds a field supervisor to the roster
func CreateMandor(c *gin.Context) {
	var input CreateMandorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	mandor := models.Mandor{
		Name:     input.Name,
		Phone:    input.Phone,
		Skill:    input.Skill,
		Address:  input.Address,
		PhotoURL: input.PhotoURL,
		UserID:   input.UserID,
		IsActive: true,
	}

	if err := config.DB.Create(&mandor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create mandor")
		return
	}

	c.JSON(http.StatusCreated, mandor)
}

// GetMandors retrieves the roster
func GetMandors(c *gin.Context) {
	var mandors []models.Mandor
	if err := config.DB.Order("created_at").Find(&mandors).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve mandors")
		return
	}

	c.JSON(http.StatusOK, mandors)
}

// GetMandor retrieves a roster entry by ID
func GetMandor(c *gin.Context) {
	mandorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mandor ID format")
		return
	}

	var mandor models.Mandor
	if err := config.DB.First(&mandor, "id = ?", mandorUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Mandor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, mandor)
}

// UpdateMandor updates a roster entry
func UpdateMandor(c *gin.Context) {
	mandorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mandor ID format")
		return
	}

	var input UpdateMandorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var mandor models.Mandor
	if err := config.DB.First(&mandor, "id = ?", mandorUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Mandor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		mandor.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		mandor.Phone = *input.Phone
	}
	if input.Skill != nil {
		mandor.Skill = *input.Skill
	}
	if input.Address != nil {
		mandor.Address = *input.Address
	}
	if input.PhotoURL != nil {
		mandor.PhotoURL = *input.PhotoURL
	}
	if input.UserID != nil {
		mandor.UserID = input.UserID
	}
	if input.IsActive != nil {
		mandor.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&mandor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update mandor")
		return
	}

	c.JSON(http.StatusOK, mandor)
}

// DeleteMandor soft deletes a roster entry
func DeleteMandor(c *gin.Context) {
	mandorUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mandor ID format")
		return
	}

	result := config.DB.Delete(&models.Mandor{}, "id = ?", mandorUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete mandor")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Mandor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mandor deleted successfully"})
}
