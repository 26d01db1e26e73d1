package mediastore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeUploader struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (f *fakeUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestSave_UploadsAndReturnsPublicURL(t *testing.T) {
	uploader := &fakeUploader{}
	store := New(uploader, "hearthwood-media", "hero/", "https://media.hearthwood.example/", 0)

	url, err := store.Save(context.Background(), "sofa.jpg", "image/jpeg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "https://media.hearthwood.example/hero/") {
		t.Errorf("url = %q; want media base + hero/ prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q; want original extension kept", url)
	}
	if uploader.lastInput == nil || *uploader.lastInput.Bucket != "hearthwood-media" {
		t.Errorf("unexpected put input: %+v", uploader.lastInput)
	}
}

func TestSave_EnforcesSizeLimit(t *testing.T) {
	store := New(&fakeUploader{}, "hearthwood-media", "hero/", "https://media.hearthwood.example", 4)

	_, err := store.Save(context.Background(), "big.png", "image/png", strings.NewReader("too large"))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestSave_PropagatesUploadFailure(t *testing.T) {
	store := New(&fakeUploader{err: errors.New("bucket gone")}, "hearthwood-media", "hero/", "https://media.hearthwood.example", 0)

	_, err := store.Save(context.Background(), "sofa.jpg", "image/jpeg", strings.NewReader("x"))
	if err == nil {
		t.Error("expected upload failure to propagate")
	}
}
