// controllers/schedule.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/scheduling"
	"mandorpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleInput is the assignment editor's draft. Every field is required
// before a submit is accepted; a missing field is rejected up front and never
// reaches the database.
type ScheduleInput struct {
	CustomerName string    `json:"customerName" binding:"required"`
	ServiceName  string    `json:"serviceName" binding:"required"`
	Date         string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string    `json:"time" binding:"required"`
	Address      string    `json:"address" binding:"required"`
	MandorID     uuid.UUID `json:"mandorId" binding:"required"`
	Status       string    `json:"status"`
}

// listAppointments merges order-backed and manual appointments: orders first in
// creation order, then manual rows.
func listAppointments(db *gorm.DB) ([]scheduling.Appointment, error) {
	var orders []models.Order
	if err := db.Preload("Mandor").Order("created_at").Find(&orders).Error; err != nil {
		return nil, err
	}

	var manual []models.Schedule
	if err := db.Preload("Mandor").Order("created_at").Find(&manual).Error; err != nil {
		return nil, err
	}

	appts := make([]scheduling.Appointment, 0, len(orders)+len(manual))
	for _, o := range orders {
		appts = append(appts, scheduling.FromOrder(o))
	}
	for _, s := range manual {
		appts = append(appts, scheduling.FromSchedule(s))
	}
	return appts, nil
}

// GetSchedules returns the full appointment list.
func GetSchedules(c *gin.Context) {
	appts, err := listAppointments(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetCalendar returns the month grid with per-day status indicators.
func GetCalendar(c *gin.Context) {
	now := time.Now()

	year := now.Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	month := int(now.Month())
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
			return
		}
		month = parsed
	}

	appts, err := listAppointments(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"cells": scheduling.MonthGrid(year, time.Month(month), appts),
	})
}

// GetAgenda returns the appointments on one calendar date. A date with no
// appointments returns an empty list, not an error.
func GetAgenda(c *gin.Context) {
	date := c.Query("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	appts, err := listAppointments(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, scheduling.AppointmentsOn(date, appts))
}

// CreateSchedule adds a manual appointment not backed by an order.
func CreateSchedule(c *gin.Context) {
	var input ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	status := scheduling.Status(input.Status)
	if input.Status == "" {
		status = scheduling.StatusAwaitingValidation
	} else if !status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var mandor models.Mandor
	if err := config.DB.First(&mandor, "id = ?", input.MandorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Mandor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	mandorID := mandor.ID
	schedule := models.Schedule{
		CustomerName: input.CustomerName,
		ServiceName:  input.ServiceName,
		Date:         date,
		Time:         input.Time,
		Address:      input.Address,
		MandorID:     &mandorID,
		Status:       string(status),
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	schedule.Mandor = &mandor
	c.JSON(http.StatusCreated, scheduling.FromSchedule(schedule))
}

// UpdateSchedule is the assignment editor's save. For an order-backed
// appointment the draft status is translated to the order enum and pushed as a
// partial update of the order, never a new record; the response is rebuilt from
// a fresh read so joined display fields (mandor name) are correct. Manual rows
// are updated in place.
func UpdateSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	var input ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	status := scheduling.Status(input.Status)
	if !status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var mandor models.Mandor
	if err := config.DB.First(&mandor, "id = ?", input.MandorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Mandor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Order-backed appointments share the order's id.
	var order models.Order
	err = config.DB.First(&order, "id = ?", id).Error
	if err == nil {
		updateOrderBackedSchedule(c, order, input, date, status, mandor)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var schedule models.Schedule
	if err := config.DB.First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	mandorID := mandor.ID
	schedule.CustomerName = input.CustomerName
	schedule.ServiceName = input.ServiceName
	schedule.Date = date
	schedule.Time = input.Time
	schedule.Address = input.Address
	schedule.MandorID = &mandorID
	schedule.Status = string(status)

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	schedule.Mandor = &mandor
	c.JSON(http.StatusOK, scheduling.FromSchedule(schedule))
}

func updateOrderBackedSchedule(c *gin.Context, order models.Order, input ScheduleInput, date time.Time, status scheduling.Status, mandor models.Mandor) {
	orderStatus, ok := scheduling.ToOrderStatus(status)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	mandorAssigned := order.MandorID == nil || *order.MandorID != mandor.ID
	statusChanged := order.Status != orderStatus

	updates := map[string]interface{}{
		"status":        orderStatus,
		"mandor_id":     mandor.ID,
		"date":          date,
		"time":          input.Time,
		"address":       input.Address,
		"customer_name": input.CustomerName,
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	// Re-fetch rather than patching in memory: the joined mandor name is not
	// part of the update result.
	var refreshed models.Order
	if err := config.DB.Preload("Mandor").First(&refreshed, "id = ?", order.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reload order")
		return
	}

	dispatchOrderNotifications(refreshed, statusChanged, mandorAssigned)

	c.JSON(http.StatusOK, scheduling.FromOrder(refreshed))
}

// DeleteSchedule removes a manual appointment. Order-backed appointments are
// managed through the order itself.
func DeleteSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid schedule ID format")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ?", id).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Order-backed schedules must be deleted through the order")
		return
	}

	result := config.DB.Delete(&models.Schedule{}, "id = ?", id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
