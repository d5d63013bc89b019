package bech32

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/swap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`
	payload, err := hex.DecodeString("746573742d7061796c6f6164")
	require.NoError(t, err)

	cases := map[string]struct {
		enc     string
		hrp     string
		want    []byte
		wantErr *errors.Error
	}{
		"any prefix":        {enc: enc, want: payload},
		"matching":          {enc: enc, hrp: "tiov", want: payload},
		"other prefix":      {enc: enc, hrp: "swap", wantErr: errors.ErrInvalidInput},
		"bad checksum":      {enc: enc[:len(enc)-1] + "z", wantErr: errors.ErrInvalidInput},
		"not bech32 at all": {enc: "hello", wantErr: errors.ErrInvalidInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(tc.enc, tc.hrp)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeIsReversible(t *testing.T) {
	payload := []byte("test-payload")
	enc, err := Encode("tiov", payload)
	require.NoError(t, err)
	assert.Equal(t, `tiov1w3jhxapdwpshjmr0v9jqymqq4y`, enc)

	got, err := Decode(enc, "tiov")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
