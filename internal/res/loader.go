package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotImage is returned when a source does not reference an image
var ErrNotImage = errors.New("resource is not an image")

// Resource represents a loaded image source
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// Loader resolves and loads the image sources referenced by image nodes.
// Loaded resources are cached by their source string. A Loader is safe for
// concurrent use.
type Loader struct {
	// Base URL or file path for resolving relative sources
	BaseURL string

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client
	log    *zap.Logger
}

// NewLoader creates a new resource loader
func NewLoader(baseURL string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		BaseURL: baseURL,
		cache:   make(map[string]*Resource),
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SearchPaths returns the directories searched for local resources
func (l *Loader) SearchPaths() []string {
	return l.searchPaths
}

// Load loads a resource from a URL, data URL or file path
func (l *Loader) Load(src string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[src]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	if strings.HasPrefix(src, "data:") {
		res, err = parseDataURL(src)
	} else {
		var resolved string
		if resolved, err = l.resolveURL(src); err == nil {
			if isRemote(resolved) {
				res, err = l.loadRemote(resolved)
			} else {
				res, err = l.loadLocal(resolved)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load %q: %w", shorten(src), err)
	}

	l.log.Debug("Resource loaded", zap.String("url", shorten(res.URL)), zap.String("mime", res.MimeType), zap.Int("size", len(res.Data)))

	l.cacheLock.Lock()
	l.cache[src] = res
	l.cacheLock.Unlock()
	return res, nil
}

// LoadImage loads an image resource
func (l *Loader) LoadImage(src string) (*Resource, error) {
	res, err := l.Load(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(res.MimeType, "image/") {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotImage, shorten(src), res.MimeType)
	}
	return res, nil
}

// Decode decodes the image held by the resource
func (r *Resource) Decode() (image.Image, string, error) {
	img, format, err := image.Decode(r.GetReader())
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode %s: %w", shorten(r.URL), err)
	}
	return img, format, nil
}

// DecodeConfig returns the dimensions of the image without decoding it fully
func (r *Resource) DecodeConfig() (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r.GetReader())
	if err != nil {
		return image.Config{}, "", fmt.Errorf("unable to decode %s: %w", shorten(r.URL), err)
	}
	return cfg, format, nil
}

// GetReader returns a reader for a resource
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	s, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, dataPart, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	mime := "text/plain"
	isBase64 := false
	if meta != "" {
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mime = comps[0]
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.QueryUnescape(dataPart); err == nil {
		data = []byte(d)
	} else {
		data = []byte(dataPart)
	}
	return &Resource{URL: u, Data: data, MimeType: mime}, nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// resolveURL resolves a URL relative to the base URL
func (l *Loader) resolveURL(src string) (string, error) {
	if isRemote(src) || filepath.IsAbs(src) {
		return src, nil
	}

	if !isRemote(l.BaseURL) {
		if l.BaseURL == "" {
			return src, nil
		}
		return filepath.Join(filepath.Dir(l.BaseURL), src), nil
	}

	baseURL, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	relURL, err := url.Parse(src)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(relURL).String(), nil
}

// loadRemote loads a resource from a remote URL
func (l *Loader) loadRemote(src string) (*Resource, error) {
	resp, err := l.client.Get(src)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	mime, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	if mime == "" || mime == "application/octet-stream" {
		mime = determineMimeType(src)
	}
	return &Resource{URL: src, Data: data, MimeType: strings.TrimSpace(mime)}, nil
}

// loadLocal loads a resource from a local file, falling back to the search
// paths when the file does not exist.
func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return &Resource{URL: path, Data: data, MimeType: determineMimeType(path)}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := filepath.Base(path)
	for _, dir := range l.searchPaths {
		candidate := filepath.Join(dir, base)
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return &Resource{URL: candidate, Data: data, MimeType: determineMimeType(candidate)}, nil
	}
	return nil, fmt.Errorf("resource not found: %s", path)
}

// determineMimeType determines the MIME type of a file
func determineMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// shorten keeps data URLs out of logs and error messages
func shorten(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
