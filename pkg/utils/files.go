package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// LoadFile loads the given file and performs decompression if
// necessary. The compression is determined from the file
// extension, archives (.zip, .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(strings.ToLower(filepath.Ext(filename)), data)
}

// Decompress decompresses data according to the file extension
// ext. Unknown extensions return the data as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error

	r := bytes.NewReader(data)
	switch ext {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".xz":
		decoder, err = xz.NewReader(r)
	case ".zst":
		var z *zstd.Decoder
		if z, err = zstd.NewReader(r); err == nil {
			defer z.Close()
			decoder = z
		}
	case ".lz4":
		decoder = lz4.NewReader(r)
	case ".zip":
		var zipReader *zip.Reader
		if zipReader, err = zip.NewReader(r, int64(len(data))); err != nil {
			return nil, err
		}
		if len(zipReader.File) == 0 {
			return nil, fmt.Errorf("utils: empty zip archive")
		}

		// read the first file in the zip file
		var rc io.ReadCloser
		if rc, err = zipReader.File[0].Open(); err == nil {
			defer rc.Close()
			decoder = rc
		}
	case ".7z":
		var archive *sevenzip.Reader
		if archive, err = sevenzip.NewReader(r, int64(len(data))); err != nil {
			return nil, err
		}
		if len(archive.File) == 0 {
			return nil, fmt.Errorf("utils: empty 7z archive")
		}

		// read the first file in the archive
		var rc io.ReadCloser
		if rc, err = archive.File[0].Open(); err == nil {
			defer rc.Close()
			decoder = rc
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	return io.ReadAll(decoder)
}
