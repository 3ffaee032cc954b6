package services

import (
	"context"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// DefaultImageURLExpiry is how long a presigned image URL stays valid.
const DefaultImageURLExpiry = time.Hour

// ImageResolver turns catalog image references into URLs the browser can
// load: presigned MinIO URLs when a client is configured, otherwise the
// reference appended to a static base URL.
type ImageResolver struct {
	client  *minio.Client
	bucket  string
	baseURL string
	expiry  time.Duration
	log     *zap.Logger
}

func NewImageResolver(client *minio.Client, bucket, baseURL string, log *zap.Logger) *ImageResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageResolver{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		expiry:  DefaultImageURLExpiry,
		log:     log,
	}
}

// Resolve never fails: a presign error falls back to the static URL.
func (r *ImageResolver) Resolve(ctx context.Context, ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	if r.client != nil {
		u, err := r.signedURL(ctx, ref)
		if err == nil {
			return u
		}
		r.log.Warn("presign image failed", zap.String("ref", ref), zap.Error(err))
	}
	return r.staticURL(ref)
}

func (r *ImageResolver) ResolveAll(ctx context.Context, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.Resolve(ctx, ref))
	}
	return out
}

func (r *ImageResolver) staticURL(ref string) string {
	if r.baseURL == "" {
		return ref
	}
	return strings.TrimSuffix(r.baseURL, "/") + "/" + strings.TrimPrefix(ref, "/")
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
