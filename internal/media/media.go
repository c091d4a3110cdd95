package media

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Uploader stores an image and returns a stable public URL for it.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// Cloudinary uploads images to a Cloudinary folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds an uploader from a cloudinary:// URL.
func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (u *Cloudinary) Upload(ctx context.Context, file io.Reader) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       u.folder,
		PublicID:     uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}
