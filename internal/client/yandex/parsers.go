package yandex

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// downloadInfoXML mirrors the XML document served by a downloadInfoUrl pointer.
type downloadInfoXML struct {
	XMLName xml.Name `xml:"download-info"`
	// Host is the streaming host.
	Host string `xml:"host"`
	// Path is the URL path of the payload, starting with a slash.
	Path string `xml:"path"`
	// TS is an opaque timestamp component of the path.
	TS string `xml:"ts"`
	// S is the signature component of the path.
	S string `xml:"s"`
}

// buildDirectURL synthesizes the stream URL from the fields of the XML document.
func buildDirectURL(info *downloadInfoXML) string {
	return "https://" + info.Host + "/get-mp3/" + info.S + "/" + info.TS + info.Path
}

// parseDirectLinkXML parses a direct-link XML document and synthesizes the stream URL.
func parseDirectLinkXML(data []byte) (string, error) {
	var info downloadInfoXML
	if err := xml.Unmarshal(data, &info); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if info.Host == "" || info.Path == "" {
		return "", fmt.Errorf("%w: direct-link XML is missing host or path", ErrMalformedResponse)
	}

	return buildDirectURL(&info), nil
}

// parseFileInfoResponse normalizes every known shape of the file-info response
// into a flat list of format descriptors. Accepted shapes: a top-level list,
// {result:{downloadInfo:...}}, {result:[...]}, {result:{...}} and a bare
// descriptor object.
func parseFileInfoResponse(data []byte) ([]*FormatDescriptor, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	entries := collectRawDescriptors(payload)
	if len(entries) == 0 {
		return nil, ErrNoFormatsAvailable
	}

	descriptors := make([]*FormatDescriptor, 0, len(entries))

	for _, entry := range entries {
		if descriptor := normalizeDescriptor(entry); descriptor != nil {
			descriptors = append(descriptors, descriptor)
		}
	}

	if len(descriptors) == 0 {
		return nil, ErrNoFormatsAvailable
	}

	return descriptors, nil
}

// collectRawDescriptors unwraps the response envelope and returns the raw
// descriptor objects, whatever the envelope shape was.
func collectRawDescriptors(payload any) []map[string]any {
	switch value := payload.(type) {
	case []any:
		return mapsOf(value)
	case map[string]any:
		if result, ok := value["result"]; ok {
			return collectFromResult(result)
		}

		if downloadInfo, ok := value["downloadInfo"]; ok {
			return collectFromResult(downloadInfo)
		}

		// A bare descriptor object.
		return []map[string]any{value}
	default:
		return nil
	}
}

// collectFromResult unwraps the "result" (or "downloadInfo") member.
func collectFromResult(result any) []map[string]any {
	switch value := result.(type) {
	case []any:
		return mapsOf(value)
	case map[string]any:
		if downloadInfo, ok := value["downloadInfo"]; ok {
			return collectFromResult(downloadInfo)
		}

		return []map[string]any{value}
	default:
		return nil
	}
}

// mapsOf filters a generic list down to its object members.
func mapsOf(items []any) []map[string]any {
	result := make([]map[string]any, 0, len(items))

	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			result = append(result, entry)
		}
	}

	return result
}

// normalizeDescriptor converts one raw descriptor object into a FormatDescriptor.
// Returns nil if the object carries neither a codec nor any download reference.
func normalizeDescriptor(entry map[string]any) *FormatDescriptor {
	descriptor := &FormatDescriptor{
		Codec:           strings.ToLower(stringField(entry, "codec")),
		BitrateKbps:     intField(entry, "bitrate", "bitrateInKbps"),
		Transport:       strings.ToLower(stringField(entry, "transport")),
		Key:             stringField(entry, "key"),
		DirectURL:       stringField(entry, "url", "directLink"),
		DownloadInfoURL: stringField(entry, "downloadInfoUrl"),
	}

	// Some responses put the stream URLs into a list.
	if descriptor.DirectURL == "" {
		if urls, ok := entry["urls"].([]any); ok && len(urls) > 0 {
			if first, isString := urls[0].(string); isString {
				descriptor.DirectURL = first
			}
		}
	}

	// A "url" member may actually be a pointer to the XML document.
	if descriptor.DownloadInfoURL == "" && strings.Contains(descriptor.DirectURL, "download-info") {
		descriptor.DownloadInfoURL = descriptor.DirectURL
		descriptor.DirectURL = ""
	}

	if descriptor.Transport == "" {
		descriptor.Transport = TransportRaw
	}

	// The service occasionally reports a lossy codec for a payload whose URL
	// or fields mention flac. Trust the text over the codec field.
	if !strings.Contains(descriptor.Codec, "flac") && descriptorMentionsFLAC(entry) {
		descriptor.Codec = CodecFLAC
	}

	if descriptor.Codec == "" && descriptor.DirectURL == "" && descriptor.DownloadInfoURL == "" {
		return nil
	}

	return descriptor
}

// descriptorMentionsFLAC reports whether any string field of the raw descriptor
// contains "flac".
func descriptorMentionsFLAC(entry map[string]any) bool {
	for _, value := range entry {
		if text, ok := value.(string); ok && strings.Contains(strings.ToLower(text), "flac") {
			return true
		}
	}

	return false
}

// stringField returns the first present non-empty string member among keys.
func stringField(entry map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := entry[key].(string); ok && value != "" {
			return value
		}
	}

	return ""
}

// intField returns the first present numeric member among keys, as an int.
func intField(entry map[string]any, keys ...string) int {
	for _, key := range keys {
		switch value := entry[key].(type) {
		case json.Number:
			if parsed, err := strconv.Atoi(value.String()); err == nil {
				return parsed
			}
		case float64:
			return int(value)
		case string:
			if parsed, err := strconv.Atoi(value); err == nil {
				return parsed
			}
		}
	}

	return 0
}
