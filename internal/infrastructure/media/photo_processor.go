// Package media handles candidate photo uploads
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"

	"github.com/blindcal/blindcal-go/pkg/config"
)

var photoDataPattern = regexp.MustCompile(`^data:image/(png|jpe?g|webp);base64,`)

// PhotoProcessor stores candidate photos for one tenant. Photos land under
// <basePath>/photos/<campaignID>/ with a WebP thumbnail alongside the
// original.
type PhotoProcessor struct {
	basePath string
}

// NewPhotoProcessor creates a processor rooted at the tenant's media directory
func NewPhotoProcessor(basePath string) *PhotoProcessor {
	return &PhotoProcessor{basePath: basePath}
}

// PhotoResult carries the relative URLs of a stored photo
type PhotoResult struct {
	PhotoURL string `json:"photoUrl"`
	ThumbURL string `json:"thumbUrl"`
}

// ProcessCandidatePhoto decodes a base64 data URI, stores the original, and
// writes a WebP thumbnail resized to the configured width. Only PNG, JPEG,
// and WebP uploads are accepted.
func (p *PhotoProcessor) ProcessCandidatePhoto(data, campaignID, candidateID string) (*PhotoResult, error) {
	if data == "" {
		return nil, fmt.Errorf("empty photo data")
	}

	match := photoDataPattern.FindStringSubmatch(data)
	if match == nil {
		return nil, fmt.Errorf("unsupported photo format, expected PNG, JPEG, or WebP data URI")
	}
	ext := match[1]
	if ext == "jpeg" {
		ext = "jpg"
	}

	decoded, err := base64.StdEncoding.DecodeString(photoDataPattern.ReplaceAllString(data, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	if len(decoded) > config.MaxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds %d byte limit", config.MaxPhotoBytes)
	}

	targetDir := filepath.Join(p.basePath, "photos", campaignID)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	// Filenames carry a ULID so re-uploads never collide with stale CDN
	// copies of the old photo.
	base := fmt.Sprintf("%s-%s", candidateID, strings.ToLower(ulid.Make().String()))
	originalName := fmt.Sprintf("%s.%s", base, ext)
	originalPath := filepath.Join(targetDir, originalName)

	if err := os.WriteFile(originalPath, decoded, 0644); err != nil {
		return nil, fmt.Errorf("failed to write photo: %w", err)
	}

	thumbName := fmt.Sprintf("%s_thumb.webp", base)
	thumbPath := filepath.Join(targetDir, thumbName)
	if err := p.writeThumbnail(originalPath, thumbPath); err != nil {
		os.Remove(originalPath)
		return nil, err
	}

	return &PhotoResult{
		PhotoURL: fmt.Sprintf("/media/photos/%s/%s", campaignID, originalName),
		ThumbURL: fmt.Sprintf("/media/photos/%s/%s", campaignID, thumbName),
	}, nil
}

// DeleteCandidatePhotos removes every stored photo for a candidate. Missing
// files are not an error, the candidate may never have uploaded one.
func (p *PhotoProcessor) DeleteCandidatePhotos(campaignID, candidateID string) error {
	targetDir := filepath.Join(p.basePath, "photos", campaignID)
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read photo directory: %w", err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), candidateID+"-") {
			if err := os.Remove(filepath.Join(targetDir, entry.Name())); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove photo %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}

// DeleteCampaignPhotos removes the whole photo directory for a campaign
func (p *PhotoProcessor) DeleteCampaignPhotos(campaignID string) error {
	targetDir := filepath.Join(p.basePath, "photos", campaignID)
	if err := os.RemoveAll(targetDir); err != nil {
		return fmt.Errorf("failed to remove campaign photos: %w", err)
	}
	return nil
}

func (p *PhotoProcessor) writeThumbnail(originalPath, thumbPath string) error {
	file, err := os.Open(originalPath)
	if err != nil {
		return fmt.Errorf("failed to open photo for thumbnailing: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode photo: %w", err)
	}

	resized := imaging.Resize(img, config.PhotoThumbWidth, 0, imaging.Lanczos)
	if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return nil
}
