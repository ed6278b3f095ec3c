//go:build unit

package notify_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"lashdiary/internal/infra/notify"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func payload() shared.BookingPayload {
	start := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	return shared.BookingPayload{
		BookingID:    uuid.MustParse("6f1c2a8e-0000-4000-8000-000000000001"),
		Name:         "Amani Wanjiru",
		Email:        "amani@example.com",
		Phone:        "0712345678",
		Date:         "2025-03-10",
		TimeSlot:     start,
		EndsAt:       start.Add(2 * time.Hour),
		Services:     []string{"Classic Full Set"},
		FinalCents:   650000,
		DepositCents: 195000,
	}
}

func TestComposer_Compose(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	c := notify.NewComposer("LashDiary", eat)

	t.Run("予約確認メールに管理リンクとQRコードが含まれる", func(t *testing.T) {
		p := payload().WithManageLink(shared.Links{BaseURL: "https://lashdiary.test/"}, "tok")

		msg, err := c.Compose(shared.TopicEmailConfirmation, p)
		require.NoError(t, err)

		assert.Equal(t, "amani@example.com", msg.To)
		assert.Contains(t, msg.Subject, "Mon 10 Mar 2025")
		assert.Contains(t, msg.Body, "Mon 10 Mar 2025, 9:00 AM")
		assert.Contains(t, msg.Body, "Deposit due: 1950.00")
		assert.Contains(t, msg.Body, "https://lashdiary.test/booking/manage/tok")
		require.Len(t, msg.Attachments, 1)
		assert.Equal(t, "image/png", msg.Attachments[0].ContentType)
		assert.True(t, bytes.HasPrefix(msg.Attachments[0].Data, pngMagic))
	})

	t.Run("譲渡メールは以前の名義人を記載する", func(t *testing.T) {
		p := payload()
		p.PreviousName = "Wanjiku"
		p = p.WithManageLink(shared.Links{BaseURL: "https://lashdiary.test"}, "tok2")

		msg, err := c.Compose(shared.TopicEmailTransfer, p)
		require.NoError(t, err)
		assert.Contains(t, msg.Body, "Wanjiku has transferred their appointment to you.")
		assert.Len(t, msg.Attachments, 1)
	})

	t.Run("キャンセルメールには添付がない", func(t *testing.T) {
		p := payload()
		p.Reason = "studio closed"

		msg, err := c.Compose(shared.TopicEmailCancellation, p)
		require.NoError(t, err)
		assert.Contains(t, msg.Body, "Reason: studio closed")
		assert.NotContains(t, msg.Body, "Manage your booking")
		assert.Empty(t, msg.Attachments)
	})

	t.Run("未知のトピックはエラー", func(t *testing.T) {
		_, err := c.Compose("email.unknown", payload())
		assert.True(t, errors.Is(err, notify.ErrUnknownEmailTopic))
	})
}
