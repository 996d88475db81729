package qris

import "strconv"

// DecodeTLV splits an EMVCo-style payload into a map of 2-character tag
// to value string. Each entry is TAG (2 chars), LEN (2 decimal digits),
// VALUE (LEN chars). Scanning stops silently at the first malformed
// length field, returning whatever was accumulated before it; trailing
// garbage on a payload is routine, not an error. A repeated tag
// overwrites the earlier value.
func DecodeTLV(payload string) map[string]string {
	tags := make(map[string]string)

	i := 0
	for i+4 <= len(payload) {
		tag := payload[i : i+2]

		length, err := strconv.Atoi(payload[i+2 : i+4])
		if err != nil || length < 0 {
			break
		}

		end := i + 4 + length
		if end > len(payload) {
			end = len(payload)
		}
		tags[tag] = payload[i+4 : end]

		i += 4 + length
	}

	return tags
}
