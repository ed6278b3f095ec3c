package notify

import (
	"fmt"
	"strings"
	"time"

	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/shared"

	"github.com/skip2/go-qrcode"
)

var ErrUnknownEmailTopic = errs.New("unknown email topic")

const qrSize = 256

// Composer renders plain-text booking emails in the studio's time zone.
type Composer struct {
	studioName string
	loc        *time.Location
}

func NewComposer(studioName string, loc *time.Location) *Composer {
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{studioName: studioName, loc: loc}
}

func (c *Composer) Compose(topic string, p shared.BookingPayload) (Message, error) {
	var b strings.Builder
	msg := Message{To: p.Email}

	switch topic {
	case shared.TopicEmailConfirmation:
		msg.Subject = fmt.Sprintf("%s: your appointment on %s is confirmed", c.studioName, c.day(p.TimeSlot))
		fmt.Fprintf(&b, "Hi %s,\n\nThank you for booking with %s.\n\n", p.Name, c.studioName)
		c.writeDetails(&b, p)
		if p.DepositCents > 0 {
			fmt.Fprintf(&b, "Deposit due: %s\n", formatCents(p.DepositCents))
		}
	case shared.TopicEmailTransfer:
		msg.Subject = fmt.Sprintf("%s: an appointment has been transferred to you", c.studioName)
		fmt.Fprintf(&b, "Hi %s,\n\n", p.Name)
		if p.PreviousName != "" {
			fmt.Fprintf(&b, "%s has transferred their appointment to you.\n\n", p.PreviousName)
		}
		c.writeDetails(&b, p)
	case shared.TopicEmailCancellation:
		msg.Subject = fmt.Sprintf("%s: your appointment on %s was cancelled", c.studioName, c.day(p.TimeSlot))
		fmt.Fprintf(&b, "Hi %s,\n\nYour appointment on %s has been cancelled.\n", p.Name, c.when(p.TimeSlot))
		if p.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", p.Reason)
		}
	default:
		return Message{}, errs.Wrap(ErrUnknownEmailTopic, topic)
	}

	if p.ManageURL != "" {
		fmt.Fprintf(&b, "\nManage your booking: %s\n", p.ManageURL)
		png, err := qrcode.Encode(p.ManageURL, qrcode.Medium, qrSize)
		if err != nil {
			return Message{}, errs.Wrap(err, "encode manage link QR code")
		}
		msg.Attachments = append(msg.Attachments, Attachment{
			Name:        "manage-booking.png",
			ContentType: "image/png",
			Data:        png,
		})
	}
	fmt.Fprintf(&b, "\n%s\n", c.studioName)

	msg.Body = b.String()
	return msg, nil
}

func (c *Composer) writeDetails(b *strings.Builder, p shared.BookingPayload) {
	fmt.Fprintf(b, "When: %s\n", c.when(p.TimeSlot))
	if len(p.Services) > 0 {
		fmt.Fprintf(b, "Services: %s\n", strings.Join(p.Services, ", "))
	}
	if p.FinalCents > 0 {
		fmt.Fprintf(b, "Total: %s\n", formatCents(p.FinalCents))
	}
}

func (c *Composer) day(t time.Time) string {
	return t.In(c.loc).Format("Mon 2 Jan 2006")
}

func (c *Composer) when(t time.Time) string {
	return t.In(c.loc).Format("Mon 2 Jan 2006, 3:04 PM")
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
