//go:build unit || e2e

package authtest

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// InteractionSigner signs webhook bodies the way the chat platform does.
type InteractionSigner struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

func NewInteractionSigner(t *testing.T) *InteractionSigner {
	t.Helper()
	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &InteractionSigner{public: public, private: private}
}

// PublicKeyHex is the form the configuration carries.
func (s *InteractionSigner) PublicKeyHex() string {
	return hex.EncodeToString(s.public)
}

func (s *InteractionSigner) NewRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	var msg bytes.Buffer
	msg.WriteString(timestamp)
	msg.Write(body)
	signature := ed25519.Sign(s.private, msg.Bytes())

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}
