//go:build blst

// Cross-check of the scalar decoder against the supranational/blst
// hash_to_scalar, which reduces a single 48-byte expand_message_xmd output.
//
// Test with: go test -tags blst ./crypto/ -run Blst
package crypto

import (
	"bytes"
	"testing"

	blst "github.com/supranational/blst/bindings/go"
)

func TestBlstHashToScalarAgreement(t *testing.T) {
	dst := []byte("BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_H2G_HM2S_H2S_")
	for _, msg := range []string{"", "abc", "a longer message for hash_to_scalar"} {
		uniform, err := ExpandMessageXMD([]byte(msg), dst, ScalarChunkSize)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ScalarFromChunk(uniform)
		if err != nil {
			t.Fatal(err)
		}

		want := blst.HashToScalar([]byte(msg), dst)
		if want == nil {
			t.Fatalf("msg %q: blst hash_to_scalar failed", msg)
		}
		gotBytes := got.Bytes()
		if !bytes.Equal(gotBytes[:], want.Serialize()) {
			t.Fatalf("msg %q: got %s, blst %x", msg, got.Hex(), want.Serialize())
		}
	}
}
