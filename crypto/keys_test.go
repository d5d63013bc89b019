package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("take offer 1")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("take offer 2"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, pub.Verify(msg, nil))
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())

	c := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{8}, 32))
	assert.NotEqual(t, a.PublicKey().Address(), c.PublicKey().Address())
}

func TestConditionFormat(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	ext, typ, data, err := pub.Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
	assert.NoError(t, pub.Address().Validate())
}

func TestKeySerialization(t *testing.T) {
	priv := GenPrivKeyEd25519()
	raw, err := priv.Marshal()
	require.NoError(t, err)
	var loaded PrivateKey
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, priv, &loaded)

	pub := priv.PublicKey()
	raw, err = pub.Marshal()
	require.NoError(t, err)
	var pubLoaded PublicKey
	require.NoError(t, pubLoaded.Unmarshal(raw))
	assert.Equal(t, pub, &pubLoaded)

	sig, err := priv.Sign([]byte("hello"))
	require.NoError(t, err)
	raw, err = sig.Marshal()
	require.NoError(t, err)
	var sigLoaded Signature
	require.NoError(t, sigLoaded.Unmarshal(raw))
	assert.True(t, pub.Verify([]byte("hello"), &sigLoaded))
}
