package comlink

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderDate          = "X-Date"
	HeaderAuthorization = "Authorization"

	signatureScheme = "HMAC-SHA256"
)

// Sign builds the authentication headers for one request. It returns nil when
// either key is empty; unsigned requests are valid against open deployments.
//
// A nil or empty body digests as the empty string, never as "{}".
func Sign(now time.Time, accessKey, secretKey, method, uri string, body []byte) map[string]string {
	if accessKey == "" || secretKey == "" {
		return nil
	}

	reqTime := strconv.FormatInt(now.UnixMilli(), 10)
	payloadHash := md5.Sum(body)

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(reqTime))
	mac.Write([]byte(strings.ToUpper(method)))
	mac.Write([]byte(uri))
	mac.Write([]byte(hex.EncodeToString(payloadHash[:])))

	return map[string]string{
		HeaderDate:          reqTime,
		HeaderAuthorization: signatureScheme + " Credential=" + accessKey + ",Signature=" + hex.EncodeToString(mac.Sum(nil)),
	}
}
