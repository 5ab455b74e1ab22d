package notify

import (
	"fmt"

	"github.com/mesalibre/reserva-api/internal/models"
)

func ConfirmationSubject(b *models.Booking) string {
	return fmt.Sprintf("Booking confirmation – %s", b.Business.Name)
}

func ConfirmationBody(b *models.Booking) string {
	notes := b.Notes
	if notes == "" {
		notes = "none"
	}
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your booking at %s is registered.\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n"+
			"Status: %s\n"+
			"Notes: %s\n",
		b.Client.Name,
		b.Business.Name,
		b.Service.Name,
		b.Date.Format("2006-01-02"),
		b.StartClock,
		b.EndClock,
		b.Status,
		notes,
	)
}

func CancellationSubject(b *models.Booking) string {
	return fmt.Sprintf("Booking cancelled – %s", b.Business.Name)
}

func CancellationBody(b *models.Booking) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your booking at %s has been cancelled.\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n\n"+
			"If this was a mistake, please book again or contact the business.",
		b.Client.Name,
		b.Business.Name,
		b.Service.Name,
		b.Date.Format("2006-01-02"),
		b.StartClock,
		b.EndClock,
	)
}

func ReminderSubject(b *models.Booking) string {
	return fmt.Sprintf("Reminder: booking at %s", b.Business.Name)
}

func ReminderBody(b *models.Booking) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"A reminder of your upcoming booking:\n"+
			"- Business: %s\n"+
			"- Service: %s\n"+
			"- Date: %s\n"+
			"- Time: %s - %s\n\n"+
			"Reply to this email or use the panel to reschedule or cancel.",
		b.Client.Name,
		b.Business.Name,
		b.Service.Name,
		b.Date.Format("2006-01-02"),
		b.StartClock,
		b.EndClock,
	)
}
