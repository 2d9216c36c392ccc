package app

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	errprocess "video_share_service/pkg/err"
)

// Webhook signature headers sent by the identity provider.
const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"
)

const secretPrefix = "whsec_"

// SignatureVerifier checks webhook authenticity: an HMAC-SHA256 over
// "{id}.{timestamp}.{payload}" with the shared secret, plus a
// timestamp tolerance window against replays.
type SignatureVerifier struct {
	secret    []byte
	tolerance time.Duration
}

// NewSignatureVerifier parses the provider secret ("whsec_" followed
// by standard base64).
func NewSignatureVerifier(secret string, tolerance time.Duration) (*SignatureVerifier, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret failed: %v", err)
	}
	if tolerance <= 0 {
		tolerance = 5 * time.Minute
	}
	return &SignatureVerifier{secret: raw, tolerance: tolerance}, nil
}

// Verify checks the signature headers against the raw request body.
// sigHeader may carry several space-separated "v1,<base64>" entries;
// one match suffices.
func (v *SignatureVerifier) Verify(msgID, timestamp, sigHeader string, payload []byte) error {
	if msgID == "" || timestamp == "" || sigHeader == "" {
		return errprocess.Unauthorized("Missing webhook headers")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errprocess.Unauthorized("Invalid webhook timestamp")
	}
	age := time.Since(time.Unix(ts, 0))
	if age > v.tolerance || age < -v.tolerance {
		return errprocess.Unauthorized("Webhook timestamp outside tolerance")
	}

	expected := v.sign(msgID, timestamp, payload)
	for _, part := range strings.Fields(sigHeader) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errprocess.Unauthorized("Invalid webhook signature")
}

func (v *SignatureVerifier) sign(msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
