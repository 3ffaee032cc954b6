package services

import (
	"context"
	"net/url"
	"strings"
)

func (r *ImageResolver) signedURL(ctx context.Context, ref string) (string, error) {
	key := strings.TrimPrefix(ref, "/")
	u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.expiry, make(url.Values))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
