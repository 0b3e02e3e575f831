package audiotag

import (
	"github.com/sirupsen/logrus"

	"github.com/simonhull/audiotag/internal/registry"
)

// DeleteAll removes every tag the file's container may carry. It reports
// whether anything was removed; a file without tags is not rewritten.
func DeleteAll(path string, opts ...Option) (bool, error) {
	f, err := load(path)
	if err != nil {
		return false, err
	}
	return f.delete(f.container.Formats(), applyOptions(opts))
}

// DeleteFormat removes the tag of one format. It reports whether the file
// had such a tag. A format the container cannot carry fails with
// *FormatNotSupportedError.
func DeleteFormat(path string, format MetadataFormat, opts ...Option) (bool, error) {
	f, err := load(path)
	if err != nil {
		return false, err
	}
	if err := f.checkFormat(format); err != nil {
		return false, err
	}
	return f.delete([]MetadataFormat{format}, applyOptions(opts))
}

func (f *audioFile) delete(formats []MetadataFormat, o *options) (bool, error) {
	var removed []MetadataFormat
	for _, format := range formats {
		codec := registry.Get(format)
		if _, ok := codec.Locate(f.data); !ok {
			continue
		}
		data, err := codec.Replace(f.data, nil)
		if err != nil {
			return false, err
		}
		f.data = data
		removed = append(removed, format)
	}
	if len(removed) == 0 {
		return false, nil
	}

	log.WithFields(logrus.Fields{
		"path":    f.path,
		"formats": removed,
	}).Debug("deleting tags")

	if err := writeFile(f.path, f.data, o); err != nil {
		return false, err
	}
	return true, nil
}
