package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/middlewares"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

type TableController struct {
	Floor *services.FloorService
}

func NewTableController(floor *services.FloorService) *TableController {
	return &TableController{Floor: floor}
}

type createTableRequest struct {
	Name  string `json:"name" binding:"required,tablename"`
	Seats int    `json:"seats" binding:"required,min=1"`
}

// GetAllTables -> all tables with the dashboard summary
func (tc *TableController) GetAllTables(c *gin.Context) {
	snap := tc.Floor.Snapshot()
	utils.RespondJSON(c, http.StatusOK, "List of tables", gin.H{
		"tables": snap.Tables,
		"stats":  snap.Stats,
	})
}

func (tc *TableController) GetTableByName(c *gin.Context) {
	table, err := tc.Floor.Table(c.Param("name"))
	if err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetStats -> free tables and free seats
func (tc *TableController) GetStats(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Floor stats", tc.Floor.Stats())
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.BindingError(err))
		return
	}

	table, err := tc.Floor.AddTable(c.Request.Context(), actorFrom(c), req.Name, req.Seats)
	if err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// DeleteTable also drops the table's bookings. Unknown names still answer 200.
func (tc *TableController) DeleteTable(c *gin.Context) {
	name := c.Param("name")
	deleted := tc.Floor.DeleteTable(c.Request.Context(), actorFrom(c), name)

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"name":    name,
		"deleted": deleted,
	})
}

// TakeTable seats walk-in guests without creating a booking.
func (tc *TableController) TakeTable(c *gin.Context) {
	table, err := tc.Floor.TakeTable(c.Request.Context(), actorFrom(c), c.Param("name"))
	if err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table taken", table)
}

func (tc *TableController) ReleaseTable(c *gin.Context) {
	table, err := tc.Floor.ReleaseTable(c.Request.Context(), actorFrom(c), c.Param("name"))
	if err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table released", table)
}

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		Name:      c.GetString(middlewares.CtxEmail),
		RequestID: c.GetString(middlewares.CtxRequestID),
	}
}
