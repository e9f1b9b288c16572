package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// contentTypeByExt maps supported extensions to declared MIME types.
var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".heic": "image/heic",
	".heif": "image/heif",
}

// ContentTypeForName guesses the declared content type from the
// extension. Unknown extensions return "" and are rejected later by
// the batch processor.
func ContentTypeForName(name string) string {
	return contentTypeByExt[strings.ToLower(filepath.Ext(name))]
}

// ScanImageFiles scans a directory recursively for image files based
// on the configured extensions. Paths come back sorted so batches are
// processed in a stable order regardless of filesystem iteration.
func ScanImageFiles(inputDir string, cfg *Config) ([]string, error) {
	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		for _, e := range cfg.ImageExt {
			if ext == e {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// BuildInput gathers everything the pipeline needs for one file:
// identity, modification time, and the decoded metadata record. A
// decode fault does not fail the call; it is carried in MetadataErr
// for the resolver to fold into extraction-error evidence.
func BuildInput(path string, decoder MetadataDecoder) (FileInput, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInput{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	in := FileInput{
		Name:        name,
		Dir:         filepath.Dir(path),
		Extension:   filepath.Ext(name),
		ContentType: ContentTypeForName(name),
		ModMillis:   info.ModTime().UnixMilli(),
	}

	if decoder != nil && IsSupportedInput(in.ContentType, name) {
		record, decodeErr := decoder.DecodeMetadata(path)
		in.Metadata = record
		in.MetadataErr = decodeErr
	}
	return in, nil
}

// BuildInputs runs BuildInput over a path list, preserving order.
// A file that cannot be stat'd is dropped with a warning rather than
// aborting the batch.
func BuildInputs(paths []string, decoder MetadataDecoder, logger *Logger) []FileInput {
	inputs := make([]FileInput, 0, len(paths))
	for _, p := range paths {
		in, err := BuildInput(p, decoder)
		if err != nil {
			if logger != nil {
				logger.Log("skipping %s: %v", p, err)
			}
			fmt.Printf("Warning: skipping %s: %v\n", p, err)
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs
}
