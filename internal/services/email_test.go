package services

import (
	"context"
	"errors"
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	lastTo, lastSubject, lastHTML, lastText string
	err                                     error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html, text string) error {
	f.lastTo, f.lastSubject, f.lastHTML, f.lastText = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(name string, _ any) (string, string, string, error) {
	f.lastTemplate = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	ctx := context.Background()
	data := &domain.BookingConfirmationEmailData{Email: "jane@example.com", Title: "Go Meetup"}

	t.Run("renders and sends", func(t *testing.T) {
		mailer, renderer := &fakeMailer{}, &fakeRenderer{}
		svc := NewEmailService(mailer, renderer)

		require.NoError(t, svc.SendBookingConfirmation(ctx, data))
		assert.Equal(t, "booking_confirmation", renderer.lastTemplate)
		assert.Equal(t, "jane@example.com", mailer.lastTo)
		assert.Equal(t, "subject", mailer.lastSubject)
		assert.Equal(t, "<p>html</p>", mailer.lastHTML)
		assert.Equal(t, "text", mailer.lastText)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		require.Error(t, svc.SendBookingConfirmation(ctx, nil))
	})

	t.Run("render failure", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")})
		require.Error(t, svc.SendBookingConfirmation(ctx, data))
		assert.Empty(t, mailer.lastTo)
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("ses down")}, &fakeRenderer{})
		err := svc.SendBookingConfirmation(ctx, data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ses down")
	})
}
