package notify_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylink/internal/models"
	"skylink/internal/notify"
)

func TestRenderTicketWritesPDF(t *testing.T) {
	dep := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	ticket := &models.Ticket{
		ID:           1,
		FlightSeatID: 10,
		OrderID:      20,
		Price:        120,
		IssuedAt:     time.Now(),
		FlightSeat: &models.FlightSeat{
			ID: 10,
			Seat: &models.Seat{
				Row:         1,
				Seat:        2,
				TicketClass: &models.TicketClass{Name: "Economy"},
			},
			Flight: &models.Flight{
				DepartureTime: dep,
				ArrivalTime:   dep.Add(6*time.Hour + 30*time.Minute),
				Route: &models.Route{
					Source:      &models.Airport{Name: "North Field", AirportCode: "NOF"},
					Destination: &models.Airport{Name: "South Field", AirportCode: "SOF"},
				},
			},
		},
	}

	renderer := notify.NewPDFRenderer(t.TempDir(), notify.NewQRGenerator("test-secret"))
	path, err := renderer.RenderTicket(ticket)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestRenderTicketWithoutRelations(t *testing.T) {
	ticket := &models.Ticket{ID: 2, FlightSeatID: 11, OrderID: 21, Price: 60, IssuedAt: time.Now()}

	renderer := notify.NewPDFRenderer(t.TempDir(), nil)
	path, err := renderer.RenderTicket(ticket)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
