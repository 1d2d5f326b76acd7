package fetch

import (
	"context"
	"log/slog"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// PhotoInliner replaces a remote profile photo with an inline data URL.
type PhotoInliner struct {
	opts   *Options
	logger *slog.Logger
}

// NewPhotoInliner creates an inliner. A nil opts uses DefaultOptions.
func NewPhotoInliner(opts *Options, logger *slog.Logger) *PhotoInliner {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PhotoInliner{opts: opts, logger: logger}
}

// Inline returns doc with its http(s) profile photo downloaded and inlined. Any other
// photo reference is left alone. A failed download drops the photo and is logged.
func (p *PhotoInliner) Inline(ctx context.Context, doc types.Resume) types.Resume {
	ref := doc.PersonalInfo.ProfilePhoto
	if !IsRemote(ref) {
		return doc
	}
	res, err := Image(ctx, ref, p.opts)
	if err != nil {
		p.logger.Warn("profile photo dropped", "url", ref, "error", err)
		doc.PersonalInfo.ProfilePhoto = ""
		return doc
	}
	p.logger.Debug("profile photo inlined", "url", ref, "type", res.ContentType, "bytes", len(res.Body))
	doc.PersonalInfo.ProfilePhoto = res.DataURL()
	return doc
}
