package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/mpgepmc/welfare_backend/configs"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Georgia, serif; margin: 60px; color: #222; }
h1 { color: #1a6b3c; border-bottom: 2px solid #1a6b3c; padding-bottom: 12px; }
table { margin-top: 24px; border-collapse: collapse; }
td { padding: 6px 18px 6px 0; }
.footer { margin-top: 48px; font-size: 12px; color: #777; }
</style></head>
<body>
<h1>Donation Receipt</h1>
<p>This confirms that we have received and verified your donation. Thank you for supporting our welfare projects.</p>
<table>
<tr><td>Receipt / Order Number</td><td><b>{{.OrderNumber}}</b></td></tr>
<tr><td>Donor</td><td>{{.DonorName}}</td></tr>
<tr><td>Amount</td><td>PKR {{.Amount}}</td></tr>
<tr><td>Bank Reference</td><td>{{.TransactionID}}</td></tr>
<tr><td>Verified On</td><td>{{.VerifiedOn}}</td></tr>
</table>
<p class="footer">This receipt was generated automatically. Please retain it for your records.</p>
</body>
</html>`))

// GenerateDonationReceipt renders a PDF receipt for a completed donation,
// uploads it to Cloudinary, and stores the URL on the record. Best-effort:
// failures are logged and the donation stays COMPLETED without a receipt.
func GenerateDonationReceipt(donation models.Donation) {
	if donation.Status != models.DonationCompleted {
		return
	}

	htmlData, err := renderReceiptHTML(&donation)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for %s: %v", donation.OrderNumber, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for %s: %v", donation.OrderNumber, err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, donation.OrderNumber)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for %s: %v", donation.OrderNumber, err)
		return
	}

	err = database.DB.Model(&models.Donation{}).
		Where("order_number = ?", donation.OrderNumber).
		Update("receipt_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to save receipt URL for %s: %v", donation.OrderNumber, err)
		return
	}
	log.Printf("✅ Generated receipt for donation %s.", donation.OrderNumber)
}

func renderReceiptHTML(donation *models.Donation) (string, error) {
	data := struct {
		OrderNumber   string
		DonorName     string
		Amount        string
		TransactionID string
		VerifiedOn    string
	}{
		OrderNumber:   donation.OrderNumber,
		DonorName:     donation.FullName,
		Amount:        fmt.Sprintf("%.2f", donation.Amount),
		TransactionID: donation.TransactionID,
		VerifiedOn:    time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := receiptTemplate.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, orderNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s", orderNumber),
		Folder:       "mpgepmc_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
