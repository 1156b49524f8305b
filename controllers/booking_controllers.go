package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

type BookingController struct {
	Floor *services.FloorService
}

func NewBookingController(floor *services.FloorService) *BookingController {
	return &BookingController{Floor: floor}
}

type bookingRequest struct {
	GuestName string    `json:"guest_name" binding:"required"`
	Phone     string    `json:"phone" binding:"required,phone"`
	From      time.Time `json:"from" binding:"required"`
	To        time.Time `json:"to" binding:"required,gtfield=From"`
	Table     string    `json:"table" binding:"required,tablename"`
}

func (r bookingRequest) booking() models.Booking {
	return models.NewBooking(r.GuestName, r.Phone, r.From, r.To, r.Table)
}

type deleteBookingsRequest struct {
	Bookings []bookingRequest `json:"bookings" binding:"required,min=1,dive"`
}

func (bc *BookingController) GetAllBookings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bc.Floor.Bookings())
}

// CreateBooking -> reserves the table for the guest. Repeating an identical
// booking is accepted and changes nothing.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.BindingError(err))
		return
	}

	booking := req.booking()
	added, err := bc.Floor.AddBooking(c.Request.Context(), actorFrom(c), booking)
	if err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	if !added {
		utils.RespondJSON(c, http.StatusOK, "Booking already exists", services.NewBookingView(booking))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", services.NewBookingView(booking))
}

// DeleteBookings -> removes a batch of bookings and frees their tables
func (bc *BookingController) DeleteBookings(c *gin.Context) {
	var req deleteBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.BindingError(err))
		return
	}

	bookings := make([]models.Booking, 0, len(req.Bookings))
	for _, b := range req.Bookings {
		bookings = append(bookings, b.booking())
	}
	if err := bc.Floor.DeleteBookings(c.Request.Context(), actorFrom(c), bookings); err != nil {
		utils.RespondFloorError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings deleted", gin.H{
		"deleted": len(bookings),
		"stats":   bc.Floor.Stats(),
	})
}
