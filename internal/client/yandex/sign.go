package yandex

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
)

// buildSignature computes the request signature for the file-info endpoint:
// base64(HMAC-SHA256(secret, ts || trackID || quality || codecs || transports))
// with trailing '=' padding stripped. The codec part of the payload is the
// codec list with commas removed.
func buildSignature(ts int64, trackID, quality string) string {
	payload := strconv.FormatInt(ts, 10) + trackID + quality + signPayloadSuffix

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(payload))

	sign := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return strings.TrimRight(sign, "=")
}

// buildFileInfoQuery assembles the full query of a signed file-info request.
func buildFileInfoQuery(ts int64, trackID, quality string) url.Values {
	query := url.Values{}
	query.Set("ts", strconv.FormatInt(ts, 10))
	query.Set("trackId", trackID)
	query.Set("quality", quality)
	query.Set("codecs", queryCodecs)
	query.Set("transports", queryTransports)
	query.Set("sign", buildSignature(ts, trackID, quality))

	return query
}
