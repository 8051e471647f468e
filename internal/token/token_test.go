package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)

	tok, err := m.Issue("user-123", time.Hour)
	require.NoError(t, err)

	subject, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)

	tok, err := m.Issue("u1", -1*time.Second)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", time.Hour).Issue("u2", time.Hour)
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("k", time.Hour)

	for _, input := range []string{"", "not.a.jwt", "garbage"} {
		_, err := m.Verify(input)
		assert.ErrorIs(t, err, ErrInvalidCredential, "input %q", input)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	tok, err := m.Issue("u3", time.Hour)
	require.NoError(t, err)

	// Flip one character of the signature segment.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerify_EmptySubject(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)
	tok, err := m.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestNoSigningKey(t *testing.T) {
	t.Parallel()

	m := NewManager("", time.Hour)

	_, err := m.Issue("u4", time.Hour)
	assert.ErrorIs(t, err, ErrNoSigningKey)

	_, err = m.Verify("anything")
	assert.ErrorIs(t, err, ErrNoSigningKey)
}
