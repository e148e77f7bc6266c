// controllers/portfolio.go
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

type CreatePortfolioInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"imageUrl"`
	CompletedAt *time.Time `json:"completedAt"`
}

type UpdatePortfolioInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	ImageURL    *string    `json:"imageUrl"`
	CompletedAt *time.Time `json:"completedAt"`
}

// CreatePortfolio adds a gallery entry
func CreatePortfolio(c *gin.Context) {
	var input CreatePortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry := models.Portfolio{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
		CompletedAt: input.CompletedAt,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create portfolio entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetPortfolio retrieves the whole gallery
func GetPortfolio(c *gin.Context) {
	var entries []models.Portfolio
	if err := config.DB.Order("created_at desc").Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// UpdatePortfolio updates a gallery entry
func UpdatePortfolio(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid portfolio ID format")
		return
	}

	var input UpdatePortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var entry models.Portfolio
	if err := config.DB.First(&entry, "id = ?", entryUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Portfolio entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.Category != nil {
		entry.Category = *input.Category
	}
	if input.Location != nil {
		entry.Location = *input.Location
	}
	if input.ImageURL != nil {
		entry.ImageURL = *input.ImageURL
	}
	if input.CompletedAt != nil {
		entry.CompletedAt = input.CompletedAt
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update portfolio entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeletePortfolio removes a gallery entry
func DeletePortfolio(c *gin.Context) {
	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid portfolio ID format")
		return
	}

	result := config.DB.Delete(&models.Portfolio{}, "id = ?", entryUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete portfolio entry")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Portfolio entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio entry deleted successfully"})
}
