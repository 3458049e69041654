package filehandler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

/*
File explanation:
This file contains the file handling helpers used by the extractor command.
DetectFileFormat detects the format of an image by extension first and by content second.
FilesInDirectory collects the supported images below a directory, sorted by path.
SaveFile writes a feature file, creating the parent directory if needed.
BaseName strips directory components from a path for record names.
*/

// SupportedImageFormats is a map of file extensions to their format names
var SupportedImageFormats = map[string]string{
	".tif":  "tiff",
	".tiff": "tiff",
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
}

// DetectFileFormat detects the format of a file
func DetectFileFormat(filePath string) (string, error) {
	// First check extension
	ext := strings.ToLower(filepath.Ext(filePath))
	if format, ok := SupportedImageFormats[ext]; ok {
		return format, nil
	}

	// If extension not recognized, try to detect by content
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to detect content type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	buffer = buffer[:n]

	// TIFF has no entry in http.DetectContentType
	if len(buffer) >= 4 {
		head := string(buffer[:4])
		if head == "II*\x00" || head == "MM\x00*" {
			return "tiff", nil
		}
	}

	contentType := http.DetectContentType(buffer)

	// Map content types to our formats
	switch {
	case strings.Contains(contentType, "image/png"):
		return "png", nil
	case strings.Contains(contentType, "image/jpeg"):
		return "jpeg", nil
	case strings.Contains(contentType, "image/gif"):
		return "gif", nil
	case strings.Contains(contentType, "image/bmp"):
		return "bmp", nil
	case strings.Contains(contentType, "image/webp"):
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported file format: %s", contentType)
	}
}

// IsImageFile checks if a file is an image based on extension
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := SupportedImageFormats[ext]
	return ok
}

// BaseName returns the file name without directory components
func BaseName(path string) string {
	return filepath.Base(path)
}

// FilesInDirectory returns the supported images in a directory, sorted by path.
// Subdirectories are walked only when recursive is set.
func FilesInDirectory(dirPath string, recursive bool) ([]string, error) {
	var files []string

	// Check if directory exists
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	// Walk the directory
	err = filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dirPath && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if IsImageFile(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SaveFile saves data to a file
func SaveFile(data []byte, filePath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Create or truncate the file
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Write data to file
	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}
