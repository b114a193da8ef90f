package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches outbound notifications. Controllers depend on the
// interface so tests can record sends instead of dialing SMTP.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends HTML mail through the SMTP collaborator.
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// BookingConfirmationData fills the booking confirmation template.
type BookingConfirmationData struct {
	UserName            string
	EventTitle          string
	SpecialRequirements string
	ConfirmationRef     string
	ConfirmationLink    string
}

var bookingConfirmationTmpl = template.Must(template.New("booking-confirmation").Parse(`
	<p>Dear {{.UserName}},</p>
	<p>You have successfully placed a booking.</p>
	<p><strong>Details:</strong></p>
	<ul>
		<li><strong>Event:</strong> {{.EventTitle}}</li>
		<li><strong>Special Requirements:</strong> {{.SpecialRequirements}}</li>
		<li><strong>Confirmation Reference:</strong> {{.ConfirmationRef}}</li>
	</ul>
	<p>You can view your booking at <a href="{{.ConfirmationLink}}">{{.ConfirmationLink}}</a>.</p>
	<p>Best regards,</p>
	<p>The Club Team</p>
`))

// RenderBookingConfirmation produces the HTML confirmation body.
// Special requirements default to "None" when the booking carries none.
func RenderBookingConfirmation(data BookingConfirmationData) (string, error) {
	if data.SpecialRequirements == "" {
		data.SpecialRequirements = "None"
	}

	var buf bytes.Buffer
	if err := bookingConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
