package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/notifications"
)

// notify hands reminder emails to the fire-and-forget sender. Tests swap it
// out to observe which donations triggered a reminder.
var notify = func(toName, toEmail, subject, htmlContent string) {
	go notifications.SendEmail(toName, toEmail, subject, htmlContent)
}

// RemindStaleVerifications nudges the admin about donations that have been
// sitting in AWAITING_VERIFICATION for more than 48 hours. The job runs
// hourly, so the one-hour window keeps each donation to a single reminder.
func RemindStaleVerifications() {
	log.Println("Running job: RemindStaleVerifications...")

	now := time.Now()
	upperBound := now.Add(-48 * time.Hour)
	lowerBound := now.Add(-49 * time.Hour)

	var staleDonations []models.Donation
	err := database.DB.
		Where("status = ? AND updated_at BETWEEN ? AND ?", models.DonationAwaitingVerification, lowerBound, upperBound).
		Find(&staleDonations).Error
	if err != nil {
		log.Printf("Error checking for stale verifications: %v", err)
		return
	}

	if len(staleDonations) == 0 {
		return
	}

	adminEmail := notifications.AdminEmail()
	for _, donation := range staleDonations {
		log.Printf("Sending verification reminder for donation %s", donation.OrderNumber)

		emailSubject := fmt.Sprintf("Reminder: Donation %s Still Awaiting Verification", donation.OrderNumber)
		emailBody := fmt.Sprintf(
			"<h1>Verification Reminder</h1><p>Donation <b>%s</b> (PKR %.2f from %s) was submitted for verification over 48 hours ago and has not been reviewed yet.</p><p>Please review the transaction slip and mark the donation as Completed or Failed.</p>",
			donation.OrderNumber,
			donation.Amount,
			donation.FullName,
		)

		notify("Donations Team", adminEmail, emailSubject, emailBody)
	}
}
