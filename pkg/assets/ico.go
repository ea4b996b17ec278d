// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assets

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"

	"gitlab.com/tozd/go/errors"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// EncodePNG encodes img with fixed settings so the same image always gives the same bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// 🗂️ EncodeICO packs square images into an ICO container with PNG-compressed entries
func EncodeICO(images ...image.Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, errors.Errorf("ico needs at least one image")
	}

	blobs := make([][]byte, len(images))
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() != b.Dy() || b.Dx() < 1 || b.Dx() > 256 {
			return nil, errors.Errorf("ico image %d is %dx%d, want a square of 1-256px", i, b.Dx(), b.Dy())
		}
		data, err := EncodePNG(img)
		if err != nil {
			return nil, err
		}
		blobs[i] = data
	}

	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR: reserved, type (1 = icon), count
	header := make([]byte, icoHeaderSize)
	le.PutUint16(header[2:], 1)
	le.PutUint16(header[4:], uint16(len(images)))
	buf.Write(header)

	offset := icoHeaderSize + icoEntrySize*len(images)
	for i, img := range images {
		size := img.Bounds().Dx()
		entry := make([]byte, icoEntrySize)
		// 0 means 256
		entry[0] = byte(size % 256)
		entry[1] = byte(size % 256)
		le.PutUint16(entry[4:], 1)  // colour planes
		le.PutUint16(entry[6:], 32) // bits per pixel
		le.PutUint32(entry[8:], uint32(len(blobs[i])))
		le.PutUint32(entry[12:], uint32(offset))
		buf.Write(entry)
		offset += len(blobs[i])
	}

	for _, blob := range blobs {
		buf.Write(blob)
	}
	return buf.Bytes(), nil
}
