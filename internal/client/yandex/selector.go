package yandex

import (
	"github.com/oshokin/yamusic-grabber/internal/config"
)

// losslessFallbackMinBitrate is the minimum bitrate an AAC-family descriptor
// must report to stand in for an absent lossless format.
const losslessFallbackMinBitrate = 256

// ChooseFormat applies the format selection policy for the requested quality
// tier and returns the winning descriptor.
//
// lossless: a FLAC-family codec; else an AAC-family codec at 256 kbps or more
// (highest first); else the highest-bitrate remaining format.
// hq: highest-bitrate AAC; else highest-bitrate MP3.
// nq: lowest-bitrate MP3 (the intent is a small file); else any.
//
// Ties are broken in favor of the raw transport (no decrypt step), then
// bitrate, then listing order.
func ChooseFormat(descriptors []*FormatDescriptor, quality string) (*FormatDescriptor, error) {
	if len(descriptors) == 0 {
		return nil, ErrNoFormatsAvailable
	}

	var chosen *FormatDescriptor

	switch quality {
	case config.QualityLossless:
		chosen = chooseLossless(descriptors)
	case config.QualityHQ:
		chosen = chooseHQ(descriptors)
	case config.QualityNQ:
		chosen = chooseNQ(descriptors)
	default:
		chosen = chooseLossless(descriptors)
	}

	if chosen == nil {
		return nil, ErrNoSuitableFormat
	}

	return chosen, nil
}

func chooseLossless(descriptors []*FormatDescriptor) *FormatDescriptor {
	// A true lossless codec always wins.
	if chosen := pickPreferRaw(filterByCodec(descriptors, CodecFLAC, CodecFLACMP4)); chosen != nil {
		return chosen
	}

	// Fall back to high-bitrate AAC variants, highest first.
	aacCandidates := make([]*FormatDescriptor, 0, len(descriptors))
	for _, descriptor := range filterByCodec(descriptors, CodecAACMP4, CodecAAC, CodecHEAACMP4) {
		if descriptor.BitrateKbps >= losslessFallbackMinBitrate {
			aacCandidates = append(aacCandidates, descriptor)
		}
	}

	if chosen := pickByBitrate(aacCandidates, true); chosen != nil {
		return chosen
	}

	// Last resort: the best of whatever remains.
	return pickByBitrate(descriptors, true)
}

func chooseHQ(descriptors []*FormatDescriptor) *FormatDescriptor {
	if chosen := pickByBitrate(filterByCodec(descriptors, CodecAAC), true); chosen != nil {
		return chosen
	}

	return pickByBitrate(filterByCodec(descriptors, CodecMP3), true)
}

func chooseNQ(descriptors []*FormatDescriptor) *FormatDescriptor {
	if chosen := pickByBitrate(filterByCodec(descriptors, CodecMP3), false); chosen != nil {
		return chosen
	}

	return pickByBitrate(descriptors, false)
}

// filterByCodec returns the descriptors whose codec is among codecs, preserving order.
func filterByCodec(descriptors []*FormatDescriptor, codecs ...string) []*FormatDescriptor {
	result := make([]*FormatDescriptor, 0, len(descriptors))

	for _, descriptor := range descriptors {
		for _, codec := range codecs {
			if descriptor.Codec == codec {
				result = append(result, descriptor)

				break
			}
		}
	}

	return result
}

// pickPreferRaw picks the best candidate preferring the raw transport,
// then the highest bitrate, then listing order.
func pickPreferRaw(candidates []*FormatDescriptor) *FormatDescriptor {
	var best *FormatDescriptor

	for _, candidate := range candidates {
		if best == nil {
			best = candidate
			continue
		}

		candidateRaw := candidate.Transport == TransportRaw
		bestRaw := best.Transport == TransportRaw

		if candidateRaw != bestRaw {
			if candidateRaw {
				best = candidate
			}

			continue
		}

		if candidate.BitrateKbps > best.BitrateKbps {
			best = candidate
		}
	}

	return best
}

// pickByBitrate picks the best candidate by bitrate (highest or lowest),
// breaking ties in favor of the raw transport, then listing order.
func pickByBitrate(candidates []*FormatDescriptor, highest bool) *FormatDescriptor {
	var best *FormatDescriptor

	for _, candidate := range candidates {
		if best == nil {
			best = candidate
			continue
		}

		if candidate.BitrateKbps != best.BitrateKbps {
			better := candidate.BitrateKbps > best.BitrateKbps
			if better == highest {
				best = candidate
			}

			continue
		}

		if candidate.Transport == TransportRaw && best.Transport != TransportRaw {
			best = candidate
		}
	}

	return best
}
