package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/little-lemon/little-lemon-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte // map of image key to file content
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance for testing
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage simulates uploading an image
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	if _, err := file.Read(content); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	imageKey := fmt.Sprintf("menu_images/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedImages[imageKey] = content
	m.mu.Unlock()

	return imageKey, nil
}

// GetImageURL simulates generating a URL for an image
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedImages[imageKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found: %s", imageKey)
	}

	return fmt.Sprintf("https://mock-bucket.s3.amazonaws.com/%s", imageKey), nil
}

// DeleteImage simulates deleting an image
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedImages, imageKey)
	m.mu.Unlock()

	return nil
}

// HasImage reports whether the mock currently stores the given key
func (m *MockImageService) HasImage(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[imageKey]
	return exists
}
