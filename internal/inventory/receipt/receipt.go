package receipt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/skip2/go-qrcode"

	"ms-boxoffice/internal/models"
)

// Generator turns a purchase confirmation into a QR receipt: the
// confirmation JSON is AES-encrypted and rendered as a QR code, so the
// receipt can be verified at the door without a purchases table.
type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateQR returns PNG bytes encoding the encrypted confirmation.
func (g *Generator) GenerateQR(confirmation models.PurchaseConfirmation) ([]byte, error) {
	encrypted, err := g.EncryptPayload(confirmation)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// EncryptPayload returns the encrypted confirmation string that gets
// rendered into the QR code.
func (g *Generator) EncryptPayload(confirmation models.PurchaseConfirmation) (string, error) {
	confirmation.QRReceipt = nil

	data, err := json.Marshal(confirmation)
	if err != nil {
		return "", err
	}

	return encryptAES(data, g.secret)
}

// Decode recovers the confirmation from an encrypted payload string
// (the text a scanner reads out of the QR code).
func (g *Generator) Decode(payload string) (*models.PurchaseConfirmation, error) {
	data, err := decryptAES(payload, g.secret)
	if err != nil {
		return nil, err
	}

	var confirmation models.PurchaseConfirmation
	if err := json.Unmarshal(data, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
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

func decryptAES(payload string, key []byte) ([]byte, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aes.BlockSize {
		return nil, errors.New("ciphertext too short")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := ciphertext[:aes.BlockSize]
	data := make([]byte, len(ciphertext)-aes.BlockSize)

	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(data, ciphertext[aes.BlockSize:])

	return data, nil
}
