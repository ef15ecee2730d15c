package appointments

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

const qrSize = 256

// QRCode PNG с токеном регистрации приёма; его сканируют на стойке отдела
func (s *Service) QRCode(ctx context.Context, id int64, userID int64) ([]byte, error) {
	details, err := s.getOwned(ctx, "QRCode", id, userID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(details.Appointment.QRCode, qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Error("QRCode: failed to encode qr for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: QRCode - encode: %v", ErrInternal, err)
	}

	return png, nil
}

// Slip талон приёма в PDF: реквизиты, список документов и QR-код
func (s *Service) Slip(ctx context.Context, id int64, userID int64) ([]byte, error) {
	details, err := s.getOwned(ctx, "Slip", id, userID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(details.Appointment.QRCode, qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Error("Slip: failed to encode qr for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Slip - encode qr: %v", ErrInternal, err)
	}

	out, err := renderSlip(details, png)
	if err != nil {
		s.logger.Error("Slip: failed to render pdf for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Slip - render: %v", ErrInternal, err)
	}

	s.logger.Info("Slip: rendered %d bytes for appointment id=%d", len(out), id)
	return out, nil
}

func renderSlip(d *domain.AppointmentDetails, qrPNG []byte) ([]byte, error) {
	a := d.Appointment

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Appointment Slip", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Reference: "+a.BookingReference)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		"Citizen: " + d.User.FullName(),
		"Service: " + d.Service.Name,
		"Department: " + d.Department.Name,
		"Date: " + d.TimeSlot.StartTime.Format(domain.DateFormat),
		fmt.Sprintf("Time: %s - %s", d.TimeSlot.StartTime.Format(domain.TimeFormat), d.TimeSlot.EndTime.Format(domain.TimeFormat)),
		"Status: " + string(a.Status),
		fmt.Sprintf("Fee: %.2f", d.Service.Fee),
	}
	if d.Department.Address != nil {
		lines = append(lines, "Address: "+*d.Department.Address)
	}
	if d.Officer != nil {
		lines = append(lines, "Officer: "+d.Officer.FullName())
	}
	for _, line := range lines {
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(8)
	}

	if len(d.Service.RequiredDocuments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Bring the following documents:")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, doc := range d.Service.RequiredDocuments {
			pdf.Cell(0, 7, tr("- "+doc))
			pdf.Ln(7)
		}
	}

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, imgOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Present this slip and the QR code at the department reception.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
