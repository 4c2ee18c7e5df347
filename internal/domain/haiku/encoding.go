package haiku

import "encoding/base64"

func encodeB64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
