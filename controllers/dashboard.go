// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"mandorpro-backend/config"
	"mandorpro-backend/models"
	"mandorpro-backend/scheduling"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	PendingRabs    int64            `json:"pendingRabs"`
	ActiveMandors  int64            `json:"activeMandors"`
	ActiveServices int64            `json:"activeServices"`
	TodayAgenda    int64            `json:"todayAgenda"`
}

// GetDashboardOverview returns the admin landing page counters.
func GetDashboardOverview(c *gin.Context) {
	overview := DashboardOverview{
		OrdersByStatus: make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	config.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts)
	for _, sc := range counts {
		overview.OrdersByStatus[sc.Status] = sc.Count
	}

	config.DB.Model(&models.Rab{}).
		Where("status = ?", models.RabSubmitted).
		Count(&overview.PendingRabs)

	config.DB.Model(&models.Mandor{}).
		Where("is_active = ?", true).
		Count(&overview.ActiveMandors)

	config.DB.Model(&models.Service{}).
		Where("is_active = ?", true).
		Count(&overview.ActiveServices)

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var todayOrders, todayManual int64
	config.DB.Model(&models.Order{}).
		Where("date >= ? AND date < ? AND status <> ?", start, end, scheduling.OrderCancel).
		Count(&todayOrders)
	config.DB.Model(&models.Schedule{}).
		Where("date >= ? AND date < ? AND status <> ?", start, end, string(scheduling.StatusCancelled)).
		Count(&todayManual)
	overview.TodayAgenda = todayOrders + todayManual

	c.JSON(http.StatusOK, overview)
}
