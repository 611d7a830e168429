package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"contact-dashboard/config"
	"contact-dashboard/internal/utils"
)

type S3Service struct {
	s3Client *s3.S3
	config   *config.S3Config
}

func NewS3Service(config *config.S3Config) (*S3Service, error) {
	if config.AccessKey == "" || config.SecretKey == "" {
		return nil, fmt.Errorf("credenciais do S3 não configuradas")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Credentials: credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Endpoint:    aws.String(config.ServiceUrl),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar sessão do S3: %v", err)
	}

	return &S3Service{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadAvatar envia a imagem de avatar e devolve a URL pública.
func (s *S3Service) UploadAvatar(file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !utils.IsImageMime(contentType) {
		return "", fmt.Errorf("tipo de arquivo não suportado para avatar: %s", contentType)
	}

	buffer := make([]byte, fileHeader.Size)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return "", fmt.Errorf("erro ao ler arquivo: %v", err)
	}

	filename := fmt.Sprintf("avatars/%s.%s", uuid.NewString(), utils.GetExtensionFromMime(contentType))

	utils.LogInfo("Iniciando upload de avatar para S3: %s", filename)

	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(filename),
		Body:        bytes.NewReader(buffer),
		ContentType: aws.String(contentType),
	}

	_, err := s.s3Client.PutObject(params)
	if err != nil {
		return "", fmt.Errorf("erro ao fazer upload para S3: %v", err)
	}

	fileUrl := fmt.Sprintf("%s/%s", s.config.BucketUrl, filename)
	utils.LogInfo("Upload concluído: %s", fileUrl)

	return fileUrl, nil
}
