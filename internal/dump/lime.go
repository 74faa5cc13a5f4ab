package dump

import (
	"encoding/binary"

	"github.com/linmemparser/linmemparser/internal/errs"
)

// limeMagic is the 32-bit little-endian magic at the start of every LiME
// segment header; read as bytes it spells "EMiL".
const limeMagic = 0x4c69_4d45

const limeHeaderSize = 32

// parseLiME scans buf for a sequence of LiME segment headers, each
// immediately followed by its segment's data bytes. Parsing stops at the
// first non-matching magic (including "no header at all", which yields a
// nil, nil result so the raw-dump path can take over).
func parseLiME(buf []byte) ([]Region, error) {
	var regions []Region
	off := 0
	for {
		if off+limeHeaderSize > len(buf) {
			break
		}
		magic := binary.LittleEndian.Uint32(buf[off : off+4])
		if magic != limeMagic {
			break
		}
		// bytes 4:8 version, ignored
		start := binary.LittleEndian.Uint64(buf[off+8 : off+16])
		end := binary.LittleEndian.Uint64(buf[off+16 : off+24])
		// bytes 24:32 reserved, ignored
		if end < start {
			return nil, errs.Newf(errs.ParseError, "LiME header at offset %d: end 0x%x < start 0x%x", off, end, start)
		}
		dataLen := end - start + 1
		dataOff := off + limeHeaderSize
		if int64(dataOff)+int64(dataLen) > int64(len(buf)) {
			return nil, errs.Newf(errs.ParseError, "LiME segment at offset %d: declared length %d exceeds buffer", off, dataLen)
		}
		regions = append(regions, Region{
			StartPhys:  start,
			EndPhys:    end,
			FileOffset: int64(dataOff),
		})
		off = dataOff + int(dataLen)
	}
	return regions, nil
}

// EncodeLiME renders regions into a LiME container, taking each region's
// data bytes from payload(r); the regions' FileOffset values are not
// read. It is the inverse of parseLiME and exists primarily so that round-trip
// behavior is testable independent of any real capture file.
func EncodeLiME(regions []Region, payload func(Region) []byte) []byte {
	var out []byte
	hdr := make([]byte, limeHeaderSize)
	for _, r := range regions {
		binary.LittleEndian.PutUint32(hdr[0:4], limeMagic)
		binary.LittleEndian.PutUint32(hdr[4:8], 1)
		binary.LittleEndian.PutUint64(hdr[8:16], r.StartPhys)
		binary.LittleEndian.PutUint64(hdr[16:24], r.EndPhys)
		binary.LittleEndian.PutUint64(hdr[24:32], 0)
		out = append(out, hdr...)
		out = append(out, payload(r)...)
	}
	return out
}
