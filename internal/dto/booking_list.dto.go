package dto

import "time"

type BookingListDTO struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}
