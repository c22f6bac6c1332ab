package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"strings"

	"fleura_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// Convention d'objet : flowers/{publicID}/{filename}

func imagesBucket() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "fleura-images"
}

// UploadFlowerImage stocke l'image d'une fleur et retourne son URL publique.
func UploadFlowerImage(flowerPublicID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	object := path.Join("flowers", flowerPublicID, file.Filename)
	_, err = database.MinIO.PutObject(context.Background(), imagesBucket(), object, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), imagesBucket(), object), nil
}

// RemoveFlowerImage supprime une image à partir de son URL publique.
func RemoveFlowerImage(imageURL string) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO non initialisé")
	}

	marker := "/" + imagesBucket() + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return fmt.Errorf("URL d'image inattendue: %s", imageURL)
	}
	object := imageURL[idx+len(marker):]

	return database.MinIO.RemoveObject(context.Background(), imagesBucket(), object,
		minio.RemoveObjectOptions{})
}
