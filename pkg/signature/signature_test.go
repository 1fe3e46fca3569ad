package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignKnownVector(t *testing.T) {
	// RFC 4231 test case 2
	got := Sign("Jefe", []byte("what do ya want for nothing?"))
	assert.Equal(t, "sha256=5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestSignDeterministic(t *testing.T) {
	body := []byte(`{"event":"alert.restock"}`)
	assert.Equal(t, Sign("s1", body), Sign("s1", body))
	assert.NotEqual(t, Sign("s1", body), Sign("s2", body))
}

func TestVerify(t *testing.T) {
	body := []byte("payload")
	h := Sign("secret", body)

	assert.True(t, Verify("secret", body, h))
	assert.False(t, Verify("secret", []byte("payload2"), h))
	assert.False(t, Verify("secret", body, h[len("sha256="):]))
}
