package donations

import (
	"fmt"

	"github.com/mpgepmc/welfare_backend/models"
)

func verificationSubmittedHTML(d *models.Donation) string {
	return fmt.Sprintf(
		"<h1>Donation Verification Submitted</h1>"+
			"<p>A donor has submitted transfer details for donation <b>%s</b>.</p>"+
			"<ul><li>Amount: PKR %.2f</li><li>Donor: %s (%s)</li><li>Bank Reference: %s</li></ul>"+
			"<p>Please review the uploaded slip and mark the donation as Completed or Failed.</p>",
		d.OrderNumber, d.Amount, d.FullName, d.Email, d.TransactionID,
	)
}

func donationCompletedHTML(d *models.Donation) string {
	return fmt.Sprintf(
		"<h1>Thank You!</h1>"+
			"<p>Dear %s,</p>"+
			"<p>We have verified your bank transfer and your donation <b>%s</b> of PKR %.2f is now complete. "+
			"Your generosity directly supports our welfare projects.</p>",
		d.FullName, d.OrderNumber, d.Amount,
	)
}

func donationFailedHTML(d *models.Donation) string {
	return fmt.Sprintf(
		"<h1>Donation Update</h1>"+
			"<p>Dear %s,</p>"+
			"<p>We were unable to verify the bank transfer for donation <b>%s</b>. "+
			"If you believe this is a mistake, please reply to this email with your transaction details.</p>",
		d.FullName, d.OrderNumber,
	)
}
