package config

// UploadConfig controls the upload pipeline and where finished files land.
type UploadConfig struct {
	MaxBytes      int64  // hard cap on the raw upload; larger requests get 413
	CompressAbove int64  // buffers larger than this are re-encoded as JPEG
	JPEGQuality   int    // quality used for the re-encode
	Dir           string // local directory for the "local" driver
	PublicPath    string // URL prefix the local directory is served under
	Driver        string // "local" or "s3"
	S3            S3Config
}

// S3Config addresses an S3 compatible bucket (AWS or MinIO).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional BaseEndpoint override, e.g. http://minio:9000
	AccessKey string
	SecretKey string
	PublicURL string // prefix returned to clients, e.g. https://cdn.example.com/uploads
	Prefix    string // object key prefix
}

// LoadUploadConfig reads UPLOAD_*, STORAGE_DRIVER and S3_* variables.
func LoadUploadConfig() UploadConfig {
	return UploadConfig{
		MaxBytes:      envInt64("UPLOAD_MAX_BYTES", 10<<20),
		CompressAbove: envInt64("UPLOAD_COMPRESS_ABOVE", 1<<20),
		JPEGQuality:   envInt("UPLOAD_JPEG_QUALITY", 80),
		Dir:           envStr("UPLOAD_DIR", "public/uploads"),
		PublicPath:    envStr("UPLOAD_PUBLIC_PATH", "/uploads"),
		Driver:        envStr("STORAGE_DRIVER", "local"),
		S3: S3Config{
			Bucket:    envStr("S3_BUCKET", ""),
			Region:    envStr("S3_REGION", "us-east-1"),
			Endpoint:  envStr("S3_ENDPOINT", ""),
			AccessKey: envStr("S3_ACCESS_KEY", ""),
			SecretKey: envStr("S3_SECRET_KEY", ""),
			PublicURL: envStr("S3_PUBLIC_URL", ""),
			Prefix:    envStr("S3_PREFIX", "uploads/"),
		},
	}
}
