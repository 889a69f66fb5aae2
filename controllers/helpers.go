package controllers

import (
	"strings"

	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
)

// isUniqueViolation reports whether err is a uniqueness constraint failure.
// String matching keeps this working with both PostgreSQL and SQLite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// attachImageURL populates the computed image_url field from the item's S3 key
func attachImageURL(item *models.MenuItem) {
	if item.ImageS3Key == nil || *item.ImageS3Key == "" {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	if url, err := imageService.GetImageURL(*item.ImageS3Key); err == nil && url != "" {
		item.ImageURL = &url
	}
}
