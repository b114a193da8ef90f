package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubhive/club-booking-app/models"
)

var testDBSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Club{}, &models.Instructor{},
		&models.Event{}, &models.Booking{}, &models.EventRating{},
	))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer captures sends instead of dialing SMTP. Sends happen on
// a goroutine, so waiting goes through a channel.
type recordingMailer struct {
	err error
	ch  chan sentMail
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{ch: make(chan sentMail, 8)}
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.ch <- sentMail{To: to, Subject: subject, Body: body}
	return m.err
}

func (m *recordingMailer) wait(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-m.ch:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mail dispatch")
		return sentMail{}
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int64          `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp, env
}

func seedTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedTestEvent(t *testing.T, db *gorm.DB, seats int) models.Event {
	t.Helper()
	club := models.Club{Title: "Chess Club", Description: "Weekly games", Image: "club.png"}
	require.NoError(t, db.Create(&club).Error)

	event := models.Event{
		Title:          "Blitz Night",
		Description:    "Five minute games",
		ClubID:         club.ID,
		Image:          "event.png",
		AvailableSeats: seats,
		Price:          10,
		Date:           time.Now().Add(48 * time.Hour),
		TimeSlots: models.TimeSlotList{
			{StartTime: "18:00", EndTime: "20:00"},
		},
		Status: models.EventPublished,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}
