package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

type ActivityController struct {
	Journal *services.Journal
}

func NewActivityController(journal *services.Journal) *ActivityController {
	return &ActivityController{Journal: journal}
}

// GetActivity -> journal entries, newest first. Optional ?table=, ?action=, ?limit=
func (ac *ActivityController) GetActivity(c *gin.Context) {
	filter := services.ActivityFilter{
		TableName: c.Query("table"),
		Action:    c.Query("action"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			utils.RespondError(c, http.StatusBadRequest, errInvalidLimit)
			return
		}
		filter.Limit = limit
	}

	entries, err := ac.Journal.Recent(c.Request.Context(), filter)
	if err != nil {
		utils.ErrorLogger.Printf("Error reading activity: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Activity", entries)
}
