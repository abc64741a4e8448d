package common

import "strings"

// MediaFileType classifies an uploaded file by its MIME family.
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
)

func (mft MediaFileType) String() string {
	return string(mft)
}

func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

// DetectFileType maps a MIME type to the stored file classification.
// Unknown types fall back to image, matching how forum photo uploads
// are treated.
func DetectFileType(mimeType string) MediaFileType {
	lower := strings.ToLower(mimeType)
	if strings.HasPrefix(lower, "image/") {
		return MediaFileTypeImage
	}
	if strings.HasPrefix(lower, "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeImage
}
