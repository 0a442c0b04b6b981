package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/metrics"
)

// SupabaseStorage reads objects through the Supabase Storage REST API
type SupabaseStorage struct {
	baseURL    string
	apiKey     string
	publicKey  string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// NewSupabaseStorage creates a storage client for the project at baseURL.
// Missing settings are reported by Fetch so a misconfigured deployment still
// answers requests.
func NewSupabaseStorage(baseURL, apiKey string, httpClient *http.Client, logger logrus.FieldLogger) *SupabaseStorage {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SupabaseStorage{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithPublicKey sets the project's public (anon) key. Without a service key
// the store falls back to the public object endpoint, which serves public
// buckets only.
func (s *SupabaseStorage) WithPublicKey(publicKey string) *SupabaseStorage {
	s.publicKey = publicKey
	return s
}

// Fetch implements ObjectStorage.Fetch
func (s *SupabaseStorage) Fetch(ctx context.Context, bucket, key string) (*Object, error) {
	if s.baseURL == "" || (s.apiKey == "" && s.publicKey == "") {
		return nil, NewStorageError("Fetch", bucket, key, ErrNotConfigured)
	}
	if bucket == "" || key == "" {
		return nil, NewStorageError("Fetch", bucket, key, ErrInvalidKey)
	}

	objectPath := "object"
	if s.apiKey == "" {
		objectPath = "object/public"
	}

	endpoint := fmt.Sprintf("%s/storage/v1/%s/%s/%s", s.baseURL, objectPath, url.PathEscape(bucket), url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewStorageError("Fetch", bucket, key, err)
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	} else {
		req.Header.Set("apikey", s.publicKey)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.observe("error", start)
		return nil, NewStorageError("Fetch", bucket, key, fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}
	defer resp.Body.Close()
	s.observe(strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewStorageError("Fetch", bucket, key, fmt.Errorf("failed to read object body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		storageErr := NewStorageError("Fetch", bucket, key, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
		storageErr.StatusCode = resp.StatusCode
		if isSupabaseNotFound(resp.StatusCode, body) {
			storageErr.Err = ErrObjectNotFound
		}

		s.logger.WithFields(logrus.Fields{
			"bucket":      bucket,
			"key":         key,
			"status_code": resp.StatusCode,
		}).Warn("Storage fetch failed")
		return nil, storageErr
	}

	obj := &Object{
		Bucket:      bucket,
		Key:         key,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        body,
		ETag:        resp.Header.Get("ETag"),
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			obj.LastModified = t
		}
	}

	s.logger.WithFields(logrus.Fields{
		"bucket": bucket,
		"key":    key,
		"size":   obj.Size(),
	}).Debug("Fetched object from storage")

	return obj, nil
}

// Close implements ObjectStorage.Close
func (s *SupabaseStorage) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *SupabaseStorage) observe(status string, start time.Time) {
	metrics.UpstreamRequestDuration.
		WithLabelValues(metrics.ServiceStorage, "fetch_object", status).
		Observe(time.Since(start).Seconds())
}

// Supabase Storage reports a missing object either as a plain 404 or as a
// 400 whose JSON body carries "not_found".
func isSupabaseNotFound(status int, body []byte) bool {
	if status == http.StatusNotFound {
		return true
	}
	if status != http.StatusBadRequest {
		return false
	}
	text := strings.ToLower(string(body))
	return strings.Contains(text, "not_found") || strings.Contains(text, "object not found")
}
