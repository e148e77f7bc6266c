// controllers/push.go
package controllers

import (
	"net/http"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type putPushSubscriptionInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutPushSubscription registers or refreshes the calling mandor's browser push
// subscription.
func PutPushSubscription(c *gin.Context) {
	var input putPushSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	userID, _ := c.Get("userId")
	var mandor models.Mandor
	if err := config.DB.First(&mandor, "user_id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusForbidden, "No roster entry linked to this account")
		return
	}

	sub := models.PushSubscription{
		Endpoint: input.Endpoint,
		MandorID: mandor.ID,
		P256DH:   input.P256DH,
		Auth:     input.Auth,
	}

	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"mandor_id", "p256dh", "auth", "updated_at"}),
	}).Create(&sub).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription saved"})
}

// DeletePushSubscription removes a subscription by endpoint.
func DeletePushSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "endpoint is required")
		return
	}

	if err := config.DB.Delete(&models.PushSubscription{}, "endpoint = ?", endpoint).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted"})
}
