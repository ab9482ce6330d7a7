package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"tripbuilder/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// responsibilityStatement is the liability text from the enrollment
// form, reproduced verbatim on the MOU.
const responsibilityStatement = `Cuba Educational Travel serves only to assist in making necessary travel arrangements for its participating members, and in no way represents, or acts as agent for, transportation carriers, hotels, and other suppliers of services connected with this tour. Therefore, is not liable for any injury, damage, loss, accident, delay or other irregularity which may be caused by the defect of any vehicle or the negligence or default of any company or person engaged in performing any of the services involved. Additionally, responsibility is not accepted for losses or expenses due to sickness, weather, strike, hostilities, wars, natural disasters or other such causes. All services and accommodations are subject to the laws of the country in which they are provided. Cuba Educational Travel does not accept liability for any airline cancellation or delay incurred by the purchase of an airline ticket. Baggage and personal effects are the sole responsibility of the owners at all times. Cuba Educational Travel reserves the right to make changes in the published itineraries whenever, in its sole judgment, conditions so warrant, or if they deem it necessary for the comfort, convenience or safety of the tour participants.

Cuba Educational Travel also reserves the right to decline to accept any person as a participant in the tours, or to require any participant to withdraw from the tour at any time, when such an action is determined by the appropriate Cuba Educational Travel staff representative to be in the best interests of the health, safety, and general welfare of the tour group, or of the individual participant.

The undersigned has read carefully the schedule of activities for this tour. The undersigned recognizes that there is a moderate level of physical activity involved in the tour and the tour may require participants to walk long distances and climb stairs. The undersigned accepts any risks thereof and the conditions set forth therein. The undersigned agrees to release and hold harmless Cuba Educational Travel and any of their officers or representatives from any and all liability for delays, injuries or death, or for the loss of or damage to, his/her property however occurring during any portion of the program.`

// Document types generated for a passenger.
const (
	DocReservation = "reservation"
	DocMOU         = "mou"
	DocAffidavit   = "affidavit"
)

// PDFService renders the three passenger documents. It only produces
// bytes; storage and CRM updates happen in DocumentService.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// GenerateMOU renders the Memorandum of Understanding with the
// responsibility statement and the passenger's signature if captured.
func (s *PDFService) GenerateMOU(p *models.Passenger, trip *models.Trip, c *models.Contact) ([]byte, string, error) {
	pdf := newLetterPDF()

	writeTitle(pdf, "MEMORANDUM OF UNDERSTANDING")

	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Trip", strOr(trip.Destination, "N/A"))
	writeKV(pdf, "Travel Dates", fmt.Sprintf("%s to %s",
		dateOr(trip.StartDate, "TBD"), dateOr(trip.EndDate, "TBD")))
	writeKV(pdf, "Category", strOr(trip.TravelCategory, "General Travel"))
	pdf.Ln(4)

	writeKV(pdf, "Passenger Name", contactFullName(c))
	writeKV(pdf, "Email", strOrEmpty(c.Email))
	writeKV(pdf, "Phone", strOr(c.Phone, "Not provided"))
	writeKV(pdf, "Date of Birth", dateOr(p.DateOfBirth, "Not provided"))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(170, 8, "Responsibility Statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, para := range strings.Split(responsibilityStatement, "\n\n") {
		pdf.MultiCell(170, 5, strings.TrimSpace(para), "", "J", false)
		pdf.Ln(3)
	}

	pdf.MultiCell(170, 5, "By signing below, the traveler acknowledges that they have read, understood, "+
		"and agree to abide by the terms and conditions outlined in this Memorandum of Understanding.", "", "J", false)
	pdf.Ln(8)

	writeSignatureBlock(pdf, "Passenger Signature:", p.PassengerSignature)

	docID := fmt.Sprintf("MOU-%s-%d", p.ID, time.Now().Unix())
	writeFooter(pdf, docID)

	out, err := pdfBytes(pdf)
	return out, docID, err
}

// GenerateAffidavit renders the travel affidavit. The travel category
// license falls back to the trip's category when the passenger never
// picked one.
func (s *PDFService) GenerateAffidavit(p *models.Passenger, trip *models.Trip, c *models.Contact) ([]byte, string, error) {
	pdf := newLetterPDF()

	writeTitle(pdf, "TRAVEL AFFIDAVIT")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "Affiant Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Full Name", contactFullName(c))
	writeKV(pdf, "Date of Birth", dateOr(p.DateOfBirth, "Not provided"))
	writeKV(pdf, "Email", strOrEmpty(c.Email))
	writeKV(pdf, "Phone", strOr(c.Phone, "Not provided"))
	pdf.Ln(4)

	category := strOrEmpty(p.TravelCategoryLicense)
	if category == "" {
		category = strOr(trip.TravelCategory, "General")
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "Trip Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Destination", strOr(trip.Destination, "N/A"))
	writeKV(pdf, "Travel Dates", fmt.Sprintf("%s to %s",
		dateOr(trip.StartDate, "TBD"), dateOr(trip.EndDate, "TBD")))
	writeKV(pdf, "Travel Category", category)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "AFFIDAVIT", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(170, 5, "I, the undersigned, being of lawful age and under oath, do hereby affirm and declare the following:", "", "J", false)
	pdf.Ln(2)
	clauses := []struct {
		head, body string
	}{
		{"1. Identity and Capacity:", "I am the individual named above and I am voluntarily participating in the travel program described herein. I have the legal capacity to enter into this agreement."},
		{"2. Health Declaration:", "I certify that I am in good health and physically capable of participating in the planned activities. I have disclosed all relevant medical conditions and understand the potential risks involved in travel."},
		{"3. Travel Documents:", "I affirm that I possess or will obtain all necessary travel documents, including a valid passport and any required visas, before the departure date."},
		{"4. Financial Responsibility:", "I acknowledge my responsibility to pay all fees associated with this trip according to the agreed-upon payment schedule."},
		{"5. Code of Conduct:", "I agree to conduct myself in a manner that is respectful, lawful, and consistent with the stated purpose and guidelines of this travel program."},
		{"6. Release of Liability:", "I understand and accept the inherent risks of international travel. I hereby release and hold harmless the trip organizers, vendors, and their representatives from any and all claims arising from my participation."},
		{"7. Accuracy of Information:", "I certify that all information provided in connection with this trip is true, accurate, and complete to the best of my knowledge."},
	}
	for _, cl := range clauses {
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(170, 5, cl.head, "", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(170, 5, cl.body, "", "J", false)
		pdf.Ln(2)
	}
	pdf.Ln(2)
	pdf.MultiCell(170, 5, "I declare under penalty of perjury that the foregoing is true and correct.", "", "J", false)
	pdf.Ln(8)

	writeSignatureBlock(pdf, "Affiant Signature:", p.PassengerSignature)

	docID := fmt.Sprintf("AFFIDAVIT-%s-%d", p.ID, time.Now().Unix())
	writeFooter(pdf, docID)

	out, err := pdfBytes(pdf)
	return out, docID, err
}

// GenerateReservation renders the reservation confirmation.
func (s *PDFService) GenerateReservation(p *models.Passenger, trip *models.Trip, c *models.Contact) ([]byte, string, error) {
	pdf := newLetterPDF()

	writeTitle(pdf, "TRIP RESERVATION CONFIRMATION")

	docID := fmt.Sprintf("RES-%s-%d", p.ID, time.Now().Unix())
	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Confirmation Number", docID)
	writeKV(pdf, "Reservation Date", time.Now().Format("January 2, 2006"))
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "TRIP DETAILS", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Destination", strOr(trip.Destination, "To be announced"))
	writeKV(pdf, "Trip Name", strOr(trip.Name, "N/A"))
	writeKV(pdf, "Departure Date", dateOr(trip.StartDate, "TBD"))
	writeKV(pdf, "Return Date", dateOr(trip.EndDate, "TBD"))
	nights := "TBD"
	if trip.NightsTotal != nil {
		nights = fmt.Sprintf("%d", *trip.NightsTotal)
	}
	writeKV(pdf, "Duration", nights+" nights")
	writeKV(pdf, "Lodging", strOr(trip.Lodging, "To be confirmed"))
	writeKV(pdf, "Category", strOr(trip.TravelCategory, "General Travel"))
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "PASSENGER INFORMATION", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	writeKV(pdf, "Name", contactFullName(c))
	writeKV(pdf, "Email", strOrEmpty(c.Email))
	writeKV(pdf, "Phone", strOr(c.Phone, "Not provided"))
	writeKV(pdf, "Date of Birth", dateOr(p.DateOfBirth, "Not provided"))
	if c.Address != nil {
		writeKV(pdf, "Address", *c.Address)
		if c.City != nil && c.State != nil {
			writeKV(pdf, "", fmt.Sprintf("%s, %s %s", *c.City, *c.State, strOrEmpty(c.PostalCode)))
		}
	}
	pdf.Ln(4)

	if trip.TripStandardLevelPricing != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(170, 7, "PRICING", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		writeKV(pdf, "Standard Level", fmt.Sprintf("$%.2f", *trip.TripStandardLevelPricing))
		if trip.DepositDate != nil {
			writeKV(pdf, "Deposit Due", trip.DepositDate.Format("January 2, 2006"))
		}
		if trip.FinalPayment != nil {
			writeKV(pdf, "Final Payment Due", trip.FinalPayment.Format("January 2, 2006"))
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(170, 7, "IMPORTANT INFORMATION", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	notes := []struct {
		head, body string
	}{
		{"Travel Documents:", "Please ensure your passport is valid for at least 6 months beyond the return date. Check visa requirements for your destination."},
		{"Travel Insurance:", "We strongly recommend purchasing comprehensive travel insurance to protect your investment."},
		{"Health Requirements:", "Consult with your healthcare provider regarding any necessary vaccinations or health precautions for your destination."},
		{"Contact Information:", "For questions or changes to your reservation, please contact us at your earliest convenience."},
	}
	for _, n := range notes {
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(170, 5, n.head, "", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(170, 5, n.body, "", "J", false)
		pdf.Ln(2)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(170, 5, "Thank you for choosing to travel with us!", "", 1, "L", false, 0, "")
	writeFooter(pdf, docID)

	out, err := pdfBytes(pdf)
	return out, docID, err
}

func newLetterPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(22, 22, 22)
	pdf.AddPage()
	return pdf
}

func writeTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(170, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func writeKV(pdf *gofpdf.Fpdf, key, value string) {
	if key != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 6, key+":", "", 0, "L", false, 0, "")
	} else {
		pdf.CellFormat(50, 6, "", "", 0, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(120, 6, value, "", 1, "L", false, 0, "")
}

// writeSignatureBlock draws the captured signature image when the
// passenger signed electronically, otherwise a line to sign on paper.
func writeSignatureBlock(pdf *gofpdf.Fpdf, label string, signature *string) {
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(50, 6, label, "", 0, "L", false, 0, "")

	if img, imgType, ok := decodeSignature(signature); ok {
		name := "signature"
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(img))
		x, y := pdf.GetXY()
		pdf.ImageOptions(name, x, y-8, 50, 25, false, gofpdf.ImageOptions{ImageType: imgType}, 0, "")
		pdf.SetXY(x+80, y)
	} else {
		pdf.CellFormat(80, 6, strings.Repeat("_", 40), "", 0, "L", false, 0, "")
	}

	pdf.CellFormat(40, 6, "Date: "+time.Now().Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

// decodeSignature handles the data URL the signature pad produces.
func decodeSignature(signature *string) ([]byte, string, bool) {
	if signature == nil {
		return nil, "", false
	}
	raw := *signature
	imgType := "PNG"
	if i := strings.Index(raw, "base64,"); i >= 0 {
		if strings.Contains(raw[:i], "jpeg") || strings.Contains(raw[:i], "jpg") {
			imgType = "JPG"
		}
		raw = raw[i+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) == 0 {
		return nil, "", false
	}
	return data, imgType, true
}

func writeFooter(pdf *gofpdf.Fpdf, docID string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(170, 5, fmt.Sprintf("Generated on %s", time.Now().Format("January 2, 2006 at 3:04 PM")), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(170, 5, "Document ID: "+docID, "", 1, "L", false, 0, "")
}

func pdfBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contactFullName(c *models.Contact) string {
	return strings.TrimSpace(strOrEmpty(c.FirstName) + " " + strOrEmpty(c.LastName))
}

func strOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}

func strOrEmpty(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}

func dateOr(t *time.Time, fallback string) string {
	if t != nil {
		return t.Format("January 2, 2006")
	}
	return fallback
}
