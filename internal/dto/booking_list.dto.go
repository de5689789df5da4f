package dto

import "github.com/BruksfildServices01/salon-booking/internal/models"

type BookingListDTO struct {
	ID            uint   `json:"id"`
	BranchID      uint   `json:"branch_id"`
	ServiceID     uint   `json:"service_id"`
	StaffID       *uint  `json:"staff_id"`
	Date          string `json:"booking_date"`
	Time          string `json:"booking_time"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	TotalAmount   int64  `json:"total_amount"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:            b.ID,
			BranchID:      b.BranchID,
			ServiceID:     b.ServiceID,
			StaffID:       b.StaffID,
			Date:          b.BookingDate,
			Time:          b.BookingTime,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			TotalAmount:   b.TotalAmount,
		})
	}
	return out
}
