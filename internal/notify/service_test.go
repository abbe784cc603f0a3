package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylink/internal/errs"
	"skylink/internal/logger"
	"skylink/internal/models"
	"skylink/internal/notify"
)

type MockNotifyDB struct {
	tickets  map[int64]*models.Ticket
	users    map[int64]*models.User
	pending  []*models.PendingTicket
	nextID   int64
	enqueued []string
}

func NewMockNotifyDB() *MockNotifyDB {
	return &MockNotifyDB{
		tickets: make(map[int64]*models.Ticket),
		users:   make(map[int64]*models.User),
		nextID:  1,
	}
}

func (m *MockNotifyDB) GetTicketWithDetails(_ context.Context, ticketID int64) (*models.Ticket, error) {
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return nil, errs.NotFound("ticket", ticketID)
	}
	return ticket, nil
}

func (m *MockNotifyDB) ListTicketIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for _, t := range m.tickets {
		if t.Order != nil && t.Order.UserID == userID {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (m *MockNotifyDB) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, errs.NotFound("user", id)
	}
	return user, nil
}

func (m *MockNotifyDB) ListActiveUsers(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockNotifyDB) SetTelegramChatID(_ context.Context, userID, chatID int64) error {
	user, ok := m.users[userID]
	if !ok {
		return errs.NotFound("user", userID)
	}
	user.TelegramChatID = chatID
	return nil
}

func (m *MockNotifyDB) EnqueuePending(_ context.Context, userID int64, pdfPath string) error {
	pending := &models.PendingTicket{ID: m.nextID, UserID: userID, PDFPath: pdfPath, User: m.users[userID]}
	m.nextID++
	m.pending = append(m.pending, pending)
	m.enqueued = append(m.enqueued, pdfPath)
	return nil
}

func (m *MockNotifyDB) ListUndelivered(_ context.Context) ([]*models.PendingTicket, error) {
	var out []*models.PendingTicket
	for _, p := range m.pending {
		if !p.Delivered {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockNotifyDB) ListUndeliveredForUser(_ context.Context, userID int64) ([]*models.PendingTicket, error) {
	var out []*models.PendingTicket
	for _, p := range m.pending {
		if !p.Delivered && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockNotifyDB) MarkDelivered(_ context.Context, id int64) error {
	for _, p := range m.pending {
		if p.ID == id {
			p.Delivered = true
			return nil
		}
	}
	return errs.NotFound("pending_ticket", id)
}

type MockRenderer struct {
	path string
	err  error
}

func (m *MockRenderer) RenderTicket(_ *models.Ticket) (string, error) {
	return m.path, m.err
}

type MockEmail struct {
	ticketsSent   []string
	greetingsSent []string
	err           error
}

func (m *MockEmail) SendTicket(to string, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.ticketsSent = append(m.ticketsSent, to)
	return nil
}

func (m *MockEmail) SendGreeting(to string, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.greetingsSent = append(m.greetingsSent, to)
	return nil
}

type MockTelegram struct {
	sent []int64
	err  error
}

func (m *MockTelegram) SendTicket(chatID int64, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, chatID)
	return nil
}

func seededNotifyDB(chatID int64) *MockNotifyDB {
	db := NewMockNotifyDB()
	user := &models.User{ID: 30, Username: "traveler", Email: "traveler@example.com", TelegramChatID: chatID, IsActive: true}
	db.users[30] = user
	db.tickets[1] = &models.Ticket{
		ID:           1,
		FlightSeatID: 10,
		OrderID:      20,
		Price:        120,
		Order:        &models.Order{ID: 20, UserID: 30, User: user},
	}
	return db
}

func TestDeliverTicketQueuesWhenNoChatLinked(t *testing.T) {
	db := seededNotifyDB(0)
	email := &MockEmail{}
	telegram := &MockTelegram{}
	svc := notify.NewService(db, &MockRenderer{path: "/tmp/ticket.pdf"}, email, telegram, &logger.Logger{})

	require.NoError(t, svc.DeliverTicket(context.Background(), 1))
	assert.Equal(t, []string{"traveler@example.com"}, email.ticketsSent)
	assert.Empty(t, telegram.sent)
	assert.Equal(t, []string{"/tmp/ticket.pdf"}, db.enqueued)
}

func TestDeliverTicketSendsToLinkedChat(t *testing.T) {
	db := seededNotifyDB(777)
	telegram := &MockTelegram{}
	svc := notify.NewService(db, &MockRenderer{path: "/tmp/ticket.pdf"}, &MockEmail{}, telegram, &logger.Logger{})

	require.NoError(t, svc.DeliverTicket(context.Background(), 1))
	assert.Equal(t, []int64{777}, telegram.sent)
	assert.Empty(t, db.enqueued)
}

func TestDeliverTicketQueuesOnTelegramFailure(t *testing.T) {
	db := seededNotifyDB(777)
	telegram := &MockTelegram{err: errors.New("chat blocked")}
	svc := notify.NewService(db, &MockRenderer{path: "/tmp/ticket.pdf"}, &MockEmail{}, telegram, &logger.Logger{})

	require.NoError(t, svc.DeliverTicket(context.Background(), 1))
	assert.Equal(t, []string{"/tmp/ticket.pdf"}, db.enqueued)
}

func TestDeliverTicketUnknownTicket(t *testing.T) {
	svc := notify.NewService(NewMockNotifyDB(), &MockRenderer{}, &MockEmail{}, nil, &logger.Logger{})

	err := svc.DeliverTicket(context.Background(), 404)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeliverTicketRenderFailure(t *testing.T) {
	db := seededNotifyDB(0)
	email := &MockEmail{}
	svc := notify.NewService(db, &MockRenderer{err: errors.New("font missing")}, email, nil, &logger.Logger{})

	err := svc.DeliverTicket(context.Background(), 1)
	assert.Error(t, err)
	assert.Empty(t, email.ticketsSent)
	assert.Empty(t, db.enqueued)
}

func TestDeliverUserTicketsSendsEach(t *testing.T) {
	db := seededNotifyDB(777)
	db.tickets[2] = &models.Ticket{
		ID:           2,
		FlightSeatID: 11,
		OrderID:      20,
		Price:        90,
		Order:        db.tickets[1].Order,
	}
	email := &MockEmail{}
	telegram := &MockTelegram{}
	svc := notify.NewService(db, &MockRenderer{path: "/tmp/ticket.pdf"}, email, telegram, &logger.Logger{})

	delivered, err := svc.DeliverUserTickets(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	assert.Len(t, email.ticketsSent, 2)
	assert.Equal(t, []int64{777, 777}, telegram.sent)
}

func TestDeliverUserTicketsUnknownUser(t *testing.T) {
	svc := notify.NewService(NewMockNotifyDB(), &MockRenderer{}, &MockEmail{}, nil, &logger.Logger{})

	_, err := svc.DeliverUserTickets(context.Background(), 404)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLinkTelegramDrainsOutbox(t *testing.T) {
	db := seededNotifyDB(0)
	db.pending = append(db.pending,
		&models.PendingTicket{ID: 1, UserID: 30, PDFPath: "/tmp/a.pdf"},
		&models.PendingTicket{ID: 2, UserID: 30, PDFPath: "/tmp/b.pdf"},
		&models.PendingTicket{ID: 3, UserID: 99, PDFPath: "/tmp/other.pdf"},
	)
	db.nextID = 4
	telegram := &MockTelegram{}
	svc := notify.NewService(db, &MockRenderer{}, &MockEmail{}, telegram, &logger.Logger{})

	require.NoError(t, svc.LinkTelegram(context.Background(), 30, 777))
	assert.Equal(t, int64(777), db.users[30].TelegramChatID)
	assert.Equal(t, []int64{777, 777}, telegram.sent)
	assert.True(t, db.pending[0].Delivered)
	assert.True(t, db.pending[1].Delivered)
	assert.False(t, db.pending[2].Delivered, "other users' documents stay queued")
}

func TestLinkTelegramZeroChatID(t *testing.T) {
	svc := notify.NewService(seededNotifyDB(0), &MockRenderer{}, &MockEmail{}, &MockTelegram{}, &logger.Logger{})

	err := svc.LinkTelegram(context.Background(), 30, 0)
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLinkTelegramUnknownUser(t *testing.T) {
	svc := notify.NewService(NewMockNotifyDB(), &MockRenderer{}, &MockEmail{}, &MockTelegram{}, &logger.Logger{})

	err := svc.LinkTelegram(context.Background(), 5, 777)
	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSweepOutboxDeliversOnlyLinkedUsers(t *testing.T) {
	db := NewMockNotifyDB()
	linked := &models.User{ID: 1, TelegramChatID: 500, IsActive: true}
	unlinked := &models.User{ID: 2, IsActive: true}
	db.users[1] = linked
	db.users[2] = unlinked
	db.pending = append(db.pending,
		&models.PendingTicket{ID: 1, UserID: 1, PDFPath: "/tmp/a.pdf", User: linked},
		&models.PendingTicket{ID: 2, UserID: 2, PDFPath: "/tmp/b.pdf", User: unlinked},
	)
	db.nextID = 3
	telegram := &MockTelegram{}
	svc := notify.NewService(db, &MockRenderer{}, &MockEmail{}, telegram, &logger.Logger{})

	require.NoError(t, svc.SweepOutbox(context.Background()))
	assert.Equal(t, []int64{500}, telegram.sent)
	assert.True(t, db.pending[0].Delivered)
	assert.False(t, db.pending[1].Delivered)
}

func TestSendWeeklyGreetingsSkipsInactiveAndEmailless(t *testing.T) {
	db := NewMockNotifyDB()
	db.users[1] = &models.User{ID: 1, Username: "a", Email: "a@example.com", IsActive: true}
	db.users[2] = &models.User{ID: 2, Username: "b", Email: "", IsActive: true}
	db.users[3] = &models.User{ID: 3, Username: "c", Email: "c@example.com", IsActive: false}
	email := &MockEmail{}
	svc := notify.NewService(db, &MockRenderer{}, email, nil, &logger.Logger{})

	sent, err := svc.SendWeeklyGreetings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"a@example.com"}, email.greetingsSent)
}
