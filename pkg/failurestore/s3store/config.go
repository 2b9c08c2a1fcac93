package s3store

type Config struct {
	Bucket         string `env:"S3_BUCKET,required"`                     // Bucket receives the failure objects.
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`       // Region is the bucket region.
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`                       // AccessKeyID enables static credentials together with SecretKey.
	SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`                   // SecretKey enables static credentials together with AccessKeyID.
	Endpoint       string `env:"S3_ENDPOINT"`                            // Endpoint is set for S3-compatible services.
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // ForcePathStyle is needed by services like MinIO.
	Prefix         string `env:"S3_PREFIX" envDefault:"import-failures"` // Prefix is the key prefix of every object.
}
