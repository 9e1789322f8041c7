package tools

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Extensions always treated as binary regardless of mime lookup.
var binaryExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true,
	".zip": true, ".tar": true, ".gz": true, ".7z": true, ".rar": true,
	".bin": true, ".exe": true, ".dll": true, ".so": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true,
}

// FileInfo describes one listed file.
type FileInfo struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Size     int64   `json:"size"`
	Modified float64 `json:"modified"`
	IsFile   bool    `json:"is_file"`
}

// FileListing is the result of list_files.
type FileListing struct {
	Directory string     `json:"directory"`
	Pattern   string     `json:"pattern"`
	Recursive bool       `json:"recursive"`
	Count     int        `json:"count"`
	Files     []FileInfo `json:"files"`
}

// FileContent is the result of read_file. Binary content is base64-encoded.
type FileContent struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Size      int64  `json:"size"`
	BytesRead int    `json:"bytes_read"`
	Encoding  string `json:"encoding"`
	IsBinary  bool   `json:"is_binary"`
	Truncated bool   `json:"truncated"`
}

// FileMetadata is the result of get_file_metadata.
type FileMetadata struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	IsFile      bool   `json:"is_file"`
	IsDirectory bool   `json:"is_directory"`
	Size        *int64 `json:"size"`
	MimeType    string `json:"mime_type"`
	Modified    string `json:"modified"`
	Mode        string `json:"mode"`
	Extension   string `json:"extension,omitempty"`
}

// ListFiles lists files in a directory, optionally recursively, filtered by a
// glob pattern matched against file names.
func ListFiles(directory, pattern string, recursive bool) any {
	if pattern == "" {
		pattern = "*"
	}

	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrorResult{Error: fmt.Sprintf("Directory not found: %s", directory)}
		}
		return ErrorResult{Error: err.Error()}
	}
	if !info.IsDir() {
		return ErrorResult{Error: fmt.Sprintf("Not a directory: %s", directory)}
	}

	files := []FileInfo{}
	collect := func(path string, d fs.DirEntry) {
		if d.IsDir() {
			return
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return
		}
		fi, err := d.Info()
		if err != nil {
			files = append(files, FileInfo{Path: path, Name: d.Name(), IsFile: true})
			return
		}
		files = append(files, FileInfo{
			Path:     path,
			Name:     d.Name(),
			Size:     fi.Size(),
			Modified: float64(fi.ModTime().UnixNano()) / float64(time.Second),
			IsFile:   true,
		})
	}

	if recursive {
		err = filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			collect(path, d)
			return nil
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(directory)
		if err == nil {
			for _, d := range entries {
				collect(filepath.Join(directory, d.Name()), d)
			}
		}
	}
	if err != nil {
		return ErrorResult{Error: err.Error()}
	}

	return FileListing{
		Directory: directory,
		Pattern:   pattern,
		Recursive: recursive,
		Count:     len(files),
		Files:     files,
	}
}

// ReadFile reads file content, base64-encoding binary files. maxBytes <= 0
// reads the whole file.
func ReadFile(path string, maxBytes int) any {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrorResult{Error: fmt.Sprintf("File not found: %s", path)}
		}
		return ErrorResult{Error: err.Error()}
	}
	if fi.IsDir() {
		return ErrorResult{Error: fmt.Sprintf("Not a file: %s", path)}
	}

	size := fi.Size()
	toRead := size
	if maxBytes > 0 && int64(maxBytes) < size {
		toRead = int64(maxBytes)
	}

	f, err := os.Open(path) //nolint:gosec // path is a caller-supplied tool argument
	if err != nil {
		return ErrorResult{Error: err.Error()}
	}
	defer f.Close() //nolint:errcheck

	raw := make([]byte, toRead)
	n, err := io.ReadFull(f, raw)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrorResult{Error: err.Error()}
	}
	raw = raw[:n]

	isBinary := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	if !isBinary {
		if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" && !strings.HasPrefix(mt, "text/") {
			isBinary = true
		}
	}
	if !isBinary && !utf8.Valid(raw) {
		isBinary = true
	}

	content := string(raw)
	encoding := "utf-8"
	if isBinary {
		content = base64.StdEncoding.EncodeToString(raw)
		encoding = "base64"
	}

	return FileContent{
		Path:      path,
		Content:   content,
		Size:      size,
		BytesRead: n,
		Encoding:  encoding,
		IsBinary:  isBinary,
		Truncated: toRead < size,
	}
}

// GetFileMetadata reports size, type, and timestamps for a path.
func GetFileMetadata(path string) any {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrorResult{Error: fmt.Sprintf("Path not found: %s", path)}
		}
		return ErrorResult{Error: err.Error()}
	}

	md := FileMetadata{
		Path:        path,
		Name:        filepath.Base(path),
		IsFile:      fi.Mode().IsRegular(),
		IsDirectory: fi.IsDir(),
		Modified:    fi.ModTime().Format(time.RFC3339),
		Mode:        fmt.Sprintf("%#o", fi.Mode().Perm()),
	}

	if fi.IsDir() {
		md.MimeType = "inode/directory"
	} else {
		size := fi.Size()
		md.Size = &size
		md.Extension = strings.ToLower(filepath.Ext(path))
		if mt := mime.TypeByExtension(md.Extension); mt != "" {
			md.MimeType = mt
		} else {
			md.MimeType = "application/octet-stream"
		}
	}
	return md
}
