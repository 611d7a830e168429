package config

import "os"

type Config struct {
	ListenAddr  string
	FrontendURL string
	CookieName  string
	RedisURI    string
	S3Config    *S3Config
}

type S3Config struct {
	AccessKey  string
	SecretKey  string
	BucketName string
	ServiceUrl string
	BucketUrl  string
}

func NewConfig() *Config {
	return &Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8081"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		CookieName:  getEnv("COOKIE_NAME", "dashboard_session"),
		RedisURI:    getEnv("REDIS_URI", "redis://localhost:6379/0"),
		S3Config: &S3Config{
			AccessKey:  os.Getenv("S3_ACCESS_KEY"),
			SecretKey:  os.Getenv("S3_SECRET_KEY"),
			BucketName: getEnv("S3_BUCKET", "contact-dashboard-avatars"),
			ServiceUrl: getEnv("S3_SERVICE_URL", "https://s3.amazonaws.com"),
			BucketUrl:  os.Getenv("S3_BUCKET_URL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
