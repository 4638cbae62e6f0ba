package payment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func TestSign_KnownVector(t *testing.T) {
	// RFC 4231 test case 2.
	got := Sign([]byte("what do ya want for nothing?"), "Jefe")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		body := make([]byte, rng.Intn(512))
		rng.Read(body)
		assert.True(t, VerifySignature(body, Sign(body, testSecret), testSecret))
	}
}

func TestVerifySignature_BodyMutation(t *testing.T) {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_29QQoUBi66xm2f"}}}}`)
	signature := Sign(body, testSecret)

	for i := range body {
		mutated := append([]byte(nil), body...)
		mutated[i] ^= 0x01
		assert.False(t, VerifySignature(mutated, signature, testSecret), "mutation at byte %d accepted", i)
	}
}

func TestVerifySignature_SignatureMutation(t *testing.T) {
	body := []byte(`{"event":"order.paid"}`)
	signature := []byte(Sign(body, testSecret))

	for i := range signature {
		mutated := append([]byte(nil), signature...)
		mutated[i] ^= 0x01
		assert.False(t, VerifySignature(body, string(mutated), testSecret), "mutation at byte %d accepted", i)
	}
}

func TestVerifySignature_Rejects(t *testing.T) {
	body := []byte(`{"a":1}`)
	assert.False(t, VerifySignature(body, "", testSecret))
	assert.False(t, VerifySignature(body, Sign(body, "other"), testSecret))
	// Same JSON, different bytes.
	assert.False(t, VerifySignature([]byte(`{ "a": 1 }`), Sign(body, testSecret), testSecret))
}
