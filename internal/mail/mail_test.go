package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"restoapi/internal/config"
	"restoapi/internal/logger"
	"restoapi/internal/model"
)

func TestBookingMessage(t *testing.T) {
	info := BookingInfo{CustomerName: "An", Date: "2025-01-10", Time: "19:00", TableNumber: "5", GuestCount: 4}

	msg, ok, err := BookingMessage("an@example.com", model.BookingConfirmed, info)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "an@example.com", msg.To)
	assert.Equal(t, "Xác nhận đặt bàn", msg.Subject)
	assert.Contains(t, msg.Text, "Xin chào An,")
	assert.Contains(t, msg.Text, "- Bàn: 5")
	assert.Contains(t, msg.Text, "- Số khách: 4")
	assert.Contains(t, msg.Text, "[Maison de Flavor]")
}

func TestBookingMessage_UnassignedTable(t *testing.T) {
	msg, ok, err := BookingMessage("a@example.com", model.BookingPending, BookingInfo{CustomerName: "B"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "- Bàn: Chưa xếp")
}

func TestBookingMessage_SilentStatus(t *testing.T) {
	_, ok, err := BookingMessage("a@example.com", model.BookingSeated, BookingInfo{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordResetMessage(t *testing.T) {
	msg, err := PasswordResetMessage("a@example.com", "an", "http://localhost/reset/abc")
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "http://localhost/reset/abc")
	assert.Contains(t, msg.Text, "Xin chào an,")
}

func TestNew_DisabledWithoutHost(t *testing.T) {
	m, err := New(config.SMTPConfig{}, logger.Discard())
	require.NoError(t, err)
	assert.ErrorIs(t, m.Send(context.Background(), Message{To: "a@example.com"}), ErrNotConfigured)
}

func TestBuildMsg(t *testing.T) {
	m, err := buildMsg("Maison <noreply@restaurant.com>", Message{
		To:          "a@example.com",
		Subject:     "Invoice",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{Name: "invoice.html", ContentType: "text/html", Data: []byte("<html></html>")}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoice"}, m.GetGenHeader(gomail.HeaderSubject))
	assert.Len(t, m.GetAttachments(), 1)

	_, err = buildMsg("noreply@restaurant.com", Message{Subject: "x"})
	assert.Error(t, err)
}
