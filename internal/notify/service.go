package notify

import (
	"context"
	"fmt"
	"time"

	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/models"
)

type DBLayer interface {
	GetTicketWithDetails(ctx context.Context, ticketID int64) (*models.Ticket, error)
	ListTicketIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListActiveUsers(ctx context.Context) ([]*models.User, error)
	SetTelegramChatID(ctx context.Context, userID, chatID int64) error
	EnqueuePending(ctx context.Context, userID int64, pdfPath string) error
	ListUndelivered(ctx context.Context) ([]*models.PendingTicket, error)
	ListUndeliveredForUser(ctx context.Context, userID int64) ([]*models.PendingTicket, error)
	MarkDelivered(ctx context.Context, id int64) error
}

type TicketRenderer interface {
	RenderTicket(ticket *models.Ticket) (string, error)
}

type EmailDelivery interface {
	SendTicket(to string, pdfPath string) error
	SendGreeting(to string, username string) error
}

type TelegramDelivery interface {
	SendTicket(chatID int64, pdfPath string) error
}

// Service renders ticket documents and pushes them out. Email goes out
// immediately; telegram delivery waits in the outbox until the user links
// a chat.
type Service struct {
	DB       DBLayer
	Renderer TicketRenderer
	Email    EmailDelivery
	Telegram TelegramDelivery // nil when the bot is not configured
	Logger   *logger.Logger
}

func NewService(db DBLayer, renderer TicketRenderer, email EmailDelivery, telegram TelegramDelivery, log *logger.Logger) *Service {
	return &Service{DB: db, Renderer: renderer, Email: email, Telegram: telegram, Logger: log}
}

// DeliverTicket renders the document and sends it through every configured
// channel. Send failures after a successful render are logged, not returned;
// the document stays available through the outbox.
func (s *Service) DeliverTicket(ctx context.Context, ticketID int64) error {
	ticket, err := s.DB.GetTicketWithDetails(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Order == nil || ticket.Order.User == nil {
		return errs.Consistency(fmt.Sprintf("ticket %d has no resolvable owner", ticketID))
	}
	user := ticket.Order.User

	pdfPath, err := s.Renderer.RenderTicket(ticket)
	if err != nil {
		return fmt.Errorf("render ticket %d: %w", ticketID, err)
	}

	if err := s.Email.SendTicket(user.Email, pdfPath); err != nil {
		s.Logger.LogNotify("EMAIL", fmt.Sprintf("ticket email for user %d failed: %v", user.ID, err))
	} else {
		s.Logger.LogNotify("EMAIL", fmt.Sprintf("ticket %d emailed to user %d", ticketID, user.ID))
	}

	if s.Telegram != nil && user.TelegramChatID != 0 {
		if err := s.Telegram.SendTicket(user.TelegramChatID, pdfPath); err != nil {
			s.Logger.LogNotify("TELEGRAM", fmt.Sprintf("send to user %d failed, queued: %v", user.ID, err))
			return s.DB.EnqueuePending(ctx, user.ID, pdfPath)
		}
		s.Logger.LogNotify("TELEGRAM", fmt.Sprintf("ticket %d sent to user %d chat", ticketID, user.ID))
		return nil
	}

	// No chat linked yet; park the document until the user checks in.
	return s.DB.EnqueuePending(ctx, user.ID, pdfPath)
}

// DeliverUserTickets re-sends every ticket the user holds. A single
// failing ticket does not stop the rest; the count of successful
// deliveries is returned.
func (s *Service) DeliverUserTickets(ctx context.Context, userID int64) (int, error) {
	if _, err := s.DB.GetUserByID(ctx, userID); err != nil {
		return 0, err
	}

	ids, err := s.DB.ListTicketIDsForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, id := range ids {
		if err := s.DeliverTicket(ctx, id); err != nil {
			s.Logger.LogNotify("DELIVER", fmt.Sprintf("ticket %d delivery for user %d failed: %v", id, userID, err))
			continue
		}
		delivered++
	}
	return delivered, nil
}

// HandleTicketIssued is the Kafka consumer callback.
func (s *Service) HandleTicketIssued(event models.TicketIssuedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.DeliverTicket(ctx, event.TicketID); err != nil {
		s.Logger.LogNotify("DELIVER", fmt.Sprintf("ticket %d delivery failed: %v", event.TicketID, err))
	}
}

// LinkTelegram stores the chat id and immediately drains the user's outbox.
func (s *Service) LinkTelegram(ctx context.Context, userID, chatID int64) error {
	if chatID == 0 {
		return errs.Validation("chat_id", "must not be zero")
	}
	if err := s.DB.SetTelegramChatID(ctx, userID, chatID); err != nil {
		return err
	}

	if s.Telegram == nil {
		return nil
	}

	pending, err := s.DB.ListUndeliveredForUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, p := range pending {
		if err := s.Telegram.SendTicket(chatID, p.PDFPath); err != nil {
			s.Logger.LogNotify("TELEGRAM", fmt.Sprintf("outbox drain for user %d failed: %v", userID, err))
			continue
		}
		if err := s.DB.MarkDelivered(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// SweepOutbox retries undelivered documents for users who have linked a
// chat since the last attempt.
func (s *Service) SweepOutbox(ctx context.Context) error {
	if s.Telegram == nil {
		return nil
	}

	pending, err := s.DB.ListUndelivered(ctx)
	if err != nil {
		return err
	}
	for _, p := range pending {
		if p.User == nil || p.User.TelegramChatID == 0 {
			continue
		}
		if err := s.Telegram.SendTicket(p.User.TelegramChatID, p.PDFPath); err != nil {
			s.Logger.LogNotify("TELEGRAM", fmt.Sprintf("sweep send for user %d failed: %v", p.UserID, err))
			continue
		}
		if err := s.DB.MarkDelivered(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// RunSweeper drives SweepOutbox on a fixed interval until the context is
// cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOutbox(ctx); err != nil {
				s.Logger.LogNotify("SWEEP", "outbox sweep failed: "+err.Error())
			}
		}
	}
}

// SendWeeklyGreetings mails every active user. Returns how many greetings
// went out.
func (s *Service) SendWeeklyGreetings(ctx context.Context) (int, error) {
	users, err := s.DB.ListActiveUsers(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		if err := s.Email.SendGreeting(user.Email, user.Username); err != nil {
			s.Logger.LogNotify("EMAIL", fmt.Sprintf("greeting for user %d failed: %v", user.ID, err))
			continue
		}
		sent++
	}
	return sent, nil
}
