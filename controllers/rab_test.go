package controllers

import (
	"net/http"
	"testing"

	"mandorpro-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRabRouter(role, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Set("userId", userID)
	})
	r.POST("/api/rab", CreateRab)
	r.GET("/api/rab", GetRabs)
	r.PUT("/api/rab/:id", UpdateRab)
	r.PUT("/api/rab/:id/status", UpdateRabStatus)
	return r
}

func TestRabTotalDerivedFromItems(t *testing.T) {
	db := setupTestDB(t)
	mandor := seedMandor(t, db)
	r := setupRabRouter(models.RoleAdmin, "")

	// A client-supplied total is ignored; the items are the source of truth.
	w := jsonRequest(t, r, http.MethodPost, "/api/rab", gin.H{
		"projectName": "Renovasi Kamar Mandi",
		"mandorId":    mandor.ID,
		"total":       1,
		"items": []gin.H{
			{"name": "Semen", "quantity": 2, "unitPrice": 65000},
			{"name": "Upah tukang", "quantity": 1, "unitPrice": 350000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Rab
	decodeBody(t, w, &created)
	assert.Equal(t, float64(480000), created.Total)
	require.Len(t, created.Items, 2)
	assert.Equal(t, float64(130000), created.Items[0].TotalPrice)
	assert.Equal(t, models.RabDraft, created.Status)

	var stored models.Rab
	require.NoError(t, db.Preload("Items").First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, float64(480000), stored.Total)
}

func TestRabUpdateRecomputesTotal(t *testing.T) {
	db := setupTestDB(t)
	mandor := seedMandor(t, db)
	r := setupRabRouter(models.RoleAdmin, "")

	w := jsonRequest(t, r, http.MethodPost, "/api/rab", gin.H{
		"projectName": "Renovasi Kamar Mandi",
		"mandorId":    mandor.ID,
		"items": []gin.H{
			{"name": "Semen", "quantity": 2, "unitPrice": 65000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Rab
	decodeBody(t, w, &created)

	// Editing a line replaces the set and recomputes the cached total.
	w = jsonRequest(t, r, http.MethodPut, "/api/rab/"+created.ID.String(), gin.H{
		"items": []gin.H{
			{"name": "Semen", "quantity": 3, "unitPrice": 65000},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Rab
	decodeBody(t, w, &updated)
	assert.Equal(t, float64(195000), updated.Total)

	var itemCount int64
	require.NoError(t, db.Model(&models.RabItem{}).Where("rab_id = ?", created.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestRabRequiresItems(t *testing.T) {
	db := setupTestDB(t)
	mandor := seedMandor(t, db)
	r := setupRabRouter(models.RoleAdmin, "")

	w := jsonRequest(t, r, http.MethodPost, "/api/rab", gin.H{
		"projectName": "Renovasi Kamar Mandi",
		"mandorId":    mandor.ID,
		"items":       []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Rab{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRabApprovalWorkflow(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Email: "budi@mandorpro.id", Password: "rahasia123", Name: "Budi", Role: models.RoleMandor}
	require.NoError(t, db.Create(&user).Error)
	userID := user.ID
	mandor := models.Mandor{Name: "Pak Budi Santoso", Phone: "+6281234567890", UserID: &userID}
	require.NoError(t, db.Create(&mandor).Error)

	mandorRouter := setupRabRouter(models.RoleMandor, user.ID.String())
	adminRouter := setupRabRouter(models.RoleAdmin, "")

	w := jsonRequest(t, mandorRouter, http.MethodPost, "/api/rab", gin.H{
		"projectName": "Perbaikan Atap",
		"items": []gin.H{
			{"name": "Genteng", "quantity": 40, "unitPrice": 12000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rab models.Rab
	decodeBody(t, w, &rab)
	assert.Equal(t, mandor.ID, rab.MandorID)

	// A mandor may submit their own proposal but not approve it.
	w = jsonRequest(t, mandorRouter, http.MethodPut, "/api/rab/"+rab.ID.String()+"/status", gin.H{"status": "submitted"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = jsonRequest(t, mandorRouter, http.MethodPut, "/api/rab/"+rab.ID.String()+"/status", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = jsonRequest(t, adminRouter, http.MethodPut, "/api/rab/"+rab.ID.String()+"/status", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Rab
	require.NoError(t, db.First(&stored, "id = ?", rab.ID).Error)
	assert.Equal(t, models.RabApproved, stored.Status)
}
