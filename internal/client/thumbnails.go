package client

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// Frame offsets sampled when generating thumbnail candidates.
var thumbnailOffsets = []string{"00:00:01", "00:00:05", "00:00:10", "00:00:15"}

// ThumbnailOption is one selectable thumbnail candidate.
type ThumbnailOption struct {
	FilePath string
	FileType string
	Label    string
	IsCustom bool
}

// ThumbnailPicker holds the thumbnail candidates for one upload: the
// generated frames plus at most one custom image. Exactly one option
// is selected at any time once options exist.
type ThumbnailPicker struct {
	options  []ThumbnailOption
	selected int
}

func NewThumbnailPicker() *ThumbnailPicker {
	return &ThumbnailPicker{selected: -1}
}

// SetGenerated replaces the generated candidates, keeping any custom
// option. Selection resets to the first option.
func (p *ThumbnailPicker) SetGenerated(options []ThumbnailOption) {
	var custom []ThumbnailOption
	for _, o := range p.options {
		if o.IsCustom {
			custom = append(custom, o)
		}
	}
	p.options = append(options, custom...)
	if len(p.options) > 0 {
		p.selected = 0
	} else {
		p.selected = -1
	}
}

// AddCustom validates and installs the custom option, replacing any
// previous one, and selects it.
func (p *ThumbnailPicker) AddCustom(opt ThumbnailOption) error {
	info, err := os.Stat(opt.FilePath)
	if err != nil {
		return fmt.Errorf("stat custom thumbnail failed: %v", err)
	}
	req := schema.ThumbnailFile{
		// Validation here only covers the file itself; the video ID is
		// bound later at upload time.
		VideoID:  "pending",
		FileName: filepath.Base(opt.FilePath),
		FileType: opt.FileType,
		FileSize: info.Size(),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	opt.IsCustom = true
	p.RemoveCustom()
	p.options = append(p.options, opt)
	p.selected = len(p.options) - 1
	return nil
}

// RemoveCustom drops the custom option. If it was selected, the picker
// is left with no selection until the user picks again.
func (p *ThumbnailPicker) RemoveCustom() {
	for i, o := range p.options {
		if o.IsCustom {
			p.options = append(p.options[:i], p.options[i+1:]...)
			if p.selected == i || p.selected >= len(p.options) {
				p.selected = -1
			} else if p.selected > i {
				p.selected--
			}
			return
		}
	}
}

// Select picks option i.
func (p *ThumbnailPicker) Select(i int) error {
	if i < 0 || i >= len(p.options) {
		return errprocess.Validation("Thumbnail selection out of range")
	}
	p.selected = i
	return nil
}

// Selected returns the current choice, or nil when no options exist.
func (p *ThumbnailPicker) Selected() *ThumbnailOption {
	if p.selected < 0 || p.selected >= len(p.options) {
		return nil
	}
	opt := p.options[p.selected]
	return &opt
}

// Options returns the candidates in display order.
func (p *ThumbnailPicker) Options() []ThumbnailOption {
	return p.options
}

// GenerateThumbnails samples candidate frames from videoPath into
// outDir. Offsets past the end of a short video simply yield no frame
// and are skipped.
func GenerateThumbnails(ctx context.Context, videoPath, outDir string) ([]ThumbnailOption, error) {
	var options []ThumbnailOption
	for i, offset := range thumbnailOffsets {
		outPath := filepath.Join(outDir, fmt.Sprintf("candidate_%d.jpg", i+1))
		cmd := exec.CommandContext(ctx, "ffmpeg",
			"-ss", offset,
			"-i", videoPath,
			"-frames:v", "1",
			"-vf", "scale=640:-1",
			"-q:v", "2",
			"-y",
			outPath,
		)
		if err := cmd.Run(); err != nil {
			continue
		}
		if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
			continue
		}
		options = append(options, ThumbnailOption{
			FilePath: outPath,
			FileType: "image/jpeg",
			Label:    offset,
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no thumbnail candidates could be generated from %s", videoPath)
	}
	return options, nil
}
