package storage

import (
	"context"
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/pkg/logging"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Service lists the input documents of processes that read from a bucket
// but never recorded their document names.
type Service struct {
	Client      *minio.Client
	StorageType string
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	var minioClient *minio.Client
	var err error

	switch cfg.StorageType {
	case "minio":
		minioClient, err = createMinIOClient(cfg)
	case "s3":
		minioClient, err = createS3Client(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.StorageType)
	}
	if err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}
	logging.Logger.Info("Storage service initialized",
		"type", cfg.StorageType,
		"endpoint", cfg.BucketEndpoint,
		"region", cfg.BucketRegion,
	)
	return &Service{Client: minioClient, StorageType: cfg.StorageType}, nil
}

// ListDocumentNames returns the object keys under location, which has the
// form "bucket" or "bucket/prefix". Keys ending in extension are kept when
// extension is set.
func (ss *Service) ListDocumentNames(ctx context.Context, location, extension string) ([]string, error) {
	bucket, prefix := SplitLocation(location)
	if bucket == "" {
		return nil, fmt.Errorf("empty bucket in location %q", location)
	}

	var names []string
	for obj := range ss.Client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			logging.Logger.Error("fail ListDocumentNames", "bucket", bucket, "prefix", prefix, "error", obj.Err)
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, "/") || !HasExtension(obj.Key, extension) {
			continue
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)
	return names, nil
}

func SplitLocation(location string) (bucket, prefix string) {
	location = strings.Trim(strings.TrimSpace(location), "/")
	bucket, prefix, _ = strings.Cut(location, "/")
	if prefix != "" {
		prefix += "/"
	}
	return bucket, prefix
}

func HasExtension(key, extension string) bool {
	if extension == "" {
		return true
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return strings.HasSuffix(strings.ToLower(key), strings.ToLower(extension))
}
