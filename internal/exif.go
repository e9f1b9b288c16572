package internal

import (
	"fmt"
	"os"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
)

// MetadataDecoder reads embedded metadata from an image file into the
// field->value record the core consumes. Implementations must return
// an error rather than panic on malformed input; the resolver folds
// the error into extraction-error evidence.
type MetadataDecoder interface {
	DecodeMetadata(path string) (MetadataRecord, error)
	Close() error
}

// NewMetadataDecoder picks the decoder implementation. The embedded
// goexif decoder needs no external binary; the exiftool decoder
// handles HEIC variants goexif cannot read but requires exiftool on
// PATH.
func NewMetadataDecoder(useExifTool bool) (MetadataDecoder, error) {
	if useExifTool {
		et, err := exiftool.NewExiftool()
		if err != nil {
			return nil, fmt.Errorf("failed to start exiftool: %w", err)
		}
		return &exiftoolDecoder{et: et}, nil
	}
	return &goexifDecoder{}, nil
}

// goexifDecoder decodes EXIF with the pure-Go rwcarlsen/goexif parser.
type goexifDecoder struct{}

// goexif tag name -> canonical record field.
var goexifFields = map[exif.FieldName]string{
	exif.DateTimeOriginal:  "DateTimeOriginal",
	exif.DateTimeDigitized: "CreateDate",
	exif.DateTime:          "ModifyDate",
}

func (d *goexifDecoder) DecodeMetadata(path string) (record MetadataRecord, err error) {
	// goexif can panic on truncated tag data; a decode fault must
	// surface as an ordinary error.
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = fmt.Errorf("exif decode panic: %v", r)
		}
	}()

	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, openErr)
	}
	defer f.Close()

	x, decodeErr := exif.Decode(f)
	if decodeErr != nil {
		// No EXIF block is not a fault, just an empty record.
		return nil, nil
	}

	record = make(MetadataRecord)
	for tag, field := range goexifFields {
		t, tagErr := x.Get(tag)
		if tagErr != nil {
			continue
		}
		if v, strErr := t.StringVal(); strErr == nil && v != "" {
			record[field] = v
		}
	}
	if len(record) == 0 {
		return nil, nil
	}
	return record, nil
}

func (d *goexifDecoder) Close() error {
	return nil
}

// exiftoolDecoder shells out to the exiftool binary via go-exiftool.
type exiftoolDecoder struct {
	et *exiftool.Exiftool
}

var exiftoolFields = []string{"DateTimeOriginal", "CreateDate", "DateTime", "ModifyDate"}

func (d *exiftoolDecoder) DecodeMetadata(path string) (MetadataRecord, error) {
	infos := d.et.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, nil
	}
	info := infos[0]
	if info.Err != nil {
		return nil, fmt.Errorf("exiftool failed on %s: %w", path, info.Err)
	}

	record := make(MetadataRecord)
	for _, field := range exiftoolFields {
		if v, err := info.GetString(field); err == nil && v != "" {
			record[field] = v
		}
	}
	if len(record) == 0 {
		return nil, nil
	}
	return record, nil
}

func (d *exiftoolDecoder) Close() error {
	return d.et.Close()
}
