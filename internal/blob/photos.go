package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PhotoPathPrefix starts every reference returned by Photos.Save.
const PhotoPathPrefix = "/photos/"

// MaxPhotoBytes bounds a decoded photo.
const MaxPhotoBytes = 5 << 20

var ErrBadPhoto = errors.New("blob: unsupported photo data")

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Photos turns uploaded data URLs into stored objects.
type Photos struct {
	store Store
	newID func() string
}

func NewPhotos(store Store) *Photos {
	return &Photos{store: store, newID: uuid.NewString}
}

func (p *Photos) Store() Store { return p.store }

// Save stores a "data:image/...;base64," value under folder and returns its
// reference. Empty values, http(s) URLs and existing references are returned as is.
func (p *Photos) Save(ctx context.Context, folder, value string) (string, error) {
	if value == "" || strings.HasPrefix(value, PhotoPathPrefix) ||
		strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value, nil
	}
	contentType, data, err := decodeDataURL(value)
	if err != nil {
		return "", err
	}
	key := folder + "/" + p.newID() + photoExtensions[contentType]
	if _, err := p.store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return PhotoPathPrefix + key, nil
}

// KeyOf returns the blob key of a reference produced by Save.
func KeyOf(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, PhotoPathPrefix)
	return key, ok && key != ""
}

func decodeDataURL(value string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(value, "data:")
	if !ok {
		return "", nil, ErrBadPhoto
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadPhoto
	}
	contentType, encoding, _ := strings.Cut(header, ";")
	contentType = strings.ToLower(contentType)
	if _, ok := photoExtensions[contentType]; !ok || encoding != "base64" {
		return "", nil, fmt.Errorf("%w: %s", ErrBadPhoto, header)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxPhotoBytes {
		return "", nil, fmt.Errorf("%w: too large", ErrBadPhoto)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, fmt.Errorf("%w: bad base64", ErrBadPhoto)
	}
	return contentType, data, nil
}
