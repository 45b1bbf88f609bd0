package font

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fontdiff/fontdiff"
)

// Raw decoders for the fixed-layout tables the comparator needs. The
// typesetting loader hands back table bytes; the layouts below follow the
// OpenType spec and are stable across font versions.

const (
	headUpemOffset = 18
	maxpNumGlyphs  = 4

	fvarHeaderSize   = 16
	fvarAxisSize     = 20
	postHeaderSize   = 32
	postFormat2      = 0x00020000
	postNumStdGlyphs = 258
)

var errTruncated = errors.New("font: truncated table")

// parseHead returns unitsPerEm.
func parseHead(data []byte) (float64, error) {
	if len(data) < headUpemOffset+2 {
		return 0, fmt.Errorf("head: %w", errTruncated)
	}
	upem := binary.BigEndian.Uint16(data[headUpemOffset:])
	if upem == 0 {
		return 0, errors.New("font: head: unitsPerEm is zero")
	}
	return float64(upem), nil
}

// parseMaxp returns the glyph count.
func parseMaxp(data []byte) (int, error) {
	if len(data) < maxpNumGlyphs+2 {
		return 0, fmt.Errorf("maxp: %w", errTruncated)
	}
	return int(binary.BigEndian.Uint16(data[maxpNumGlyphs:])), nil
}

// parseFvar decodes the variation axis records in declaration order.
//
// Layout: a 16-byte header (majorVersion, minorVersion, axesArrayOffset,
// reserved, axisCount, axisSize, instanceCount, instanceSize), followed by
// axisCount records of axisSize bytes each: tag, min, default, max as
// 16.16 fixed, flags, nameID.
func parseFvar(data []byte) ([]fontdiff.Axis, error) {
	if len(data) < fvarHeaderSize {
		return nil, fmt.Errorf("fvar: %w", errTruncated)
	}
	axesOffset := int(binary.BigEndian.Uint16(data[4:]))
	axisCount := int(binary.BigEndian.Uint16(data[8:]))
	axisSize := int(binary.BigEndian.Uint16(data[10:]))
	if axisSize < fvarAxisSize {
		return nil, fmt.Errorf("fvar: axis record size %d too small", axisSize)
	}
	end := axesOffset + axisCount*axisSize
	if end < 0 || end > len(data) {
		return nil, fmt.Errorf("fvar: %w", errTruncated)
	}

	axes := make([]fontdiff.Axis, axisCount)
	for i := 0; i < axisCount; i++ {
		rec := data[axesOffset+i*axisSize:]
		axes[i] = fontdiff.Axis{
			Tag:     fontdiff.Tag(rec[:4]),
			Min:     fixed1616(rec[4:]),
			Default: fixed1616(rec[8:]),
			Max:     fixed1616(rec[12:]),
		}
	}
	return axes, nil
}

// fixed1616 reads a signed 16.16 fixed-point value.
func fixed1616(b []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(b))) / 65536
}

// parsePost decodes glyph names from a version 2.0 post table. Only the
// custom name range is materialized: icon fonts keep their glyph names
// there, and the 258 standard Macintosh names add nothing to scenario
// labels. Glyphs without a custom name fall back to the gid label.
func parsePost(data []byte, numGlyphs int) (map[fontdiff.GlyphID]string, error) {
	if len(data) < postHeaderSize+2 {
		return nil, fmt.Errorf("post: %w", errTruncated)
	}
	if binary.BigEndian.Uint32(data) != postFormat2 {
		return nil, nil
	}

	count := int(binary.BigEndian.Uint16(data[postHeaderSize:]))
	if count > numGlyphs {
		count = numGlyphs
	}
	indexEnd := postHeaderSize + 2 + count*2
	if indexEnd > len(data) {
		return nil, fmt.Errorf("post: %w", errTruncated)
	}

	// Custom names are length-prefixed strings packed after the index.
	var customNames []string
	for p := indexEnd; p < len(data); {
		n := int(data[p])
		p++
		if p+n > len(data) {
			break
		}
		customNames = append(customNames, string(data[p:p+n]))
		p += n
	}

	names := make(map[fontdiff.GlyphID]string, count)
	for gid := 0; gid < count; gid++ {
		idx := int(binary.BigEndian.Uint16(data[postHeaderSize+2+gid*2:]))
		if idx < postNumStdGlyphs {
			continue
		}
		custom := idx - postNumStdGlyphs
		if custom < len(customNames) {
			names[fontdiff.GlyphID(gid)] = customNames[custom]
		}
	}
	return names, nil
}
