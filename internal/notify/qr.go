package notify

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/skip2/go-qrcode"

	"skylink/internal/models"
)

// QRGenerator encodes an encrypted ticket payload into a PNG QR code that
// gate staff can scan for verification.
type QRGenerator struct {
	secret []byte
}

func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:]}
}

func (q *QRGenerator) GenerateEncryptedQR(ticket *models.Ticket) ([]byte, error) {
	payload := struct {
		TicketID     int64   `json:"ticket_id"`
		FlightSeatID int64   `json:"flight_seat_id"`
		OrderID      int64   `json:"order_id"`
		Price        float64 `json:"price"`
	}{ticket.ID, ticket.FlightSeatID, ticket.OrderID, ticket.Price}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, q.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
