package id

import (
	"crypto/md5"
	"io"
	"strconv"

	"github.com/gofrs/uuid"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom trace id derived from text, same text same id
func TraceIDFrom(text string) string {
	h := md5.New()
	_, _ = io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// SubTraceID the seq-th trace id under parent
func SubTraceID(parent string, seq int) string {
	ns, err := uuid.FromString(parent)
	if err != nil {
		return TraceIDFrom(parent + ":" + strconv.Itoa(seq))
	}

	return uuid.NewV5(ns, strconv.Itoa(seq)).String()
}
