package kafka

// Record keys and values are base64 text on the wire, but upstream producers
// are known to emit malformed input. Decoding is therefore lenient: bytes
// outside the base64 alphabet are skipped, padding is ignored, a trailing
// partial quantum is decoded as far as it goes, and a single leftover
// character is dropped. Lenient decoding never fails; do not tighten it to
// strict validation, record decodes must survive garbage payloads.
// Encoding uses the standard strict alphabet (encoding/base64).

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Rev = func() (t [256]byte) {
	for i := range t {
		t[i] = 0xff
	}
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = byte(i)
	}
	return
}()

// decodeBase64Lenient decodes s best-effort, never returning an error.
func decodeBase64Lenient(s string) []byte {
	out := make([]byte, 0, len(s)/4*3+2)
	var q [4]byte
	n := 0
	for i := 0; i < len(s); i++ {
		v := base64Rev[s[i]]
		if v == 0xff {
			continue
		}
		q[n] = v
		n++
		if n == 4 {
			out = append(out, q[0]<<2|q[1]>>4, q[1]<<4|q[2]>>2, q[2]<<6|q[3])
			n = 0
		}
	}
	switch n {
	case 2:
		out = append(out, q[0]<<2|q[1]>>4)
	case 3:
		out = append(out, q[0]<<2|q[1]>>4, q[1]<<4|q[2]>>2)
	}
	return out
}
