package school

import (
	"context"
	"fmt"
	"regexp"

	"school-hub-backend/internal/assets"
	"school-hub-backend/internal/model"
	"school-hub-backend/internal/store"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactRe = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// allowedImageTypes is the raster-format allow list for uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ValidationError reports a rejected payload. Its message is safe to return
// to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// Upload carries the multipart variant's file part.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateRequest is the single request shape both endpoint variants resolve
// into: the JSON variant fills ImageURL, the multipart variant fills Upload.
type CreateRequest struct {
	Name    string
	Address string
	City    string
	State   string
	Contact string
	Email   string

	ImageURL string
	Upload   *Upload
}

// Options configures the create-endpoint deployment mode.
type Options struct {
	// UploadsEnabled stores incoming image files under the asset directory.
	// When false, uploads are ignored and records carry an image URL.
	UploadsEnabled  bool
	DefaultImageURL string
	MaxUploadBytes  int64
}

// Service validates school payloads and maps them to persistence calls.
type Service struct {
	store  store.Store
	assets *assets.Gateway
	opts   Options
}

// NewService creates a record service.
func NewService(s store.Store, g *assets.Gateway, opts Options) *Service {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	return &Service{store: s, assets: g, opts: opts}
}

// List returns all schools, newest first.
func (s *Service) List(ctx context.Context) ([]model.School, error) {
	return s.store.ListSchools(ctx)
}

// Create validates the request, resolves its image reference and inserts the
// record, returning the assigned id. Validation runs fully before any file or
// database write.
func (s *Service) Create(ctx context.Context, req CreateRequest) (uint, error) {
	if err := validate(req); err != nil {
		return 0, err
	}
	if err := s.checkUpload(req.Upload); err != nil {
		return 0, err
	}

	image, err := s.resolveImage(req)
	if err != nil {
		return 0, err
	}

	record := &model.School{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Contact: req.Contact,
		Email:   req.Email,
		Image:   image,
	}

	// If this insert fails after an upload was written, the file is orphaned
	// on disk. There is no cleanup; stored files are never referenced unless
	// the row exists.
	return s.store.CreateSchool(ctx, record)
}

func validate(req CreateRequest) error {
	if req.Name == "" || req.Address == "" || req.City == "" ||
		req.State == "" || req.Contact == "" || req.Email == "" {
		return invalid("All fields are required")
	}
	if !emailRe.MatchString(req.Email) {
		return invalid("Invalid email format")
	}
	if !contactRe.MatchString(req.Contact) {
		return invalid("Invalid contact number")
	}
	return nil
}

func (s *Service) checkUpload(up *Upload) error {
	if up == nil || !s.opts.UploadsEnabled {
		return nil
	}
	if !allowedImageTypes[up.ContentType] {
		return invalid("Only JPG, PNG, WEBP and GIF images are allowed")
	}
	if int64(len(up.Data)) > s.opts.MaxUploadBytes {
		return invalid(fmt.Sprintf("Image must be smaller than %dMB", s.opts.MaxUploadBytes>>20))
	}
	return nil
}

// resolveImage produces the value stored in the record's image column. In
// upload mode a provided file is persisted and referenced by stored name; in
// either mode a missing image falls back to the given URL or the default.
func (s *Service) resolveImage(req CreateRequest) (string, error) {
	if s.opts.UploadsEnabled && req.Upload != nil {
		stored, err := s.assets.Save(req.Upload.Filename, req.Upload.Data)
		if err != nil {
			return "", err
		}
		return stored, nil
	}
	if req.ImageURL != "" {
		return req.ImageURL, nil
	}
	return s.opts.DefaultImageURL, nil
}
