package catalogControllers

import (
	"path/filepath"
	"testing"

	"github.com/Wilfred1097/CakeShop/models"
	"github.com/stretchr/testify/assert"
)

func TestDroppedLocalImageFiles(t *testing.T) {
	previous := []models.CakeImage{
		{URL: "/uploads/cakes/kept.jpg", Position: 0},
		{URL: "/uploads/cakes/replaced.jpg", Position: 1},
		{URL: "https://images.example.com/external.jpg", Position: 2},
	}
	kept := []string{
		"/uploads/cakes/kept.jpg",
		"/uploads/cakes/new.jpg",
	}

	// Only the replaced local file is removed; kept and external URLs stay.
	paths := droppedLocalImageFiles(previous, kept)
	assert.Equal(t, []string{filepath.Join(cakeUploadDir, "replaced.jpg")}, paths)
}

func TestDroppedLocalImageFilesAllRemoved(t *testing.T) {
	previous := []models.CakeImage{
		{URL: "/uploads/cakes/first.jpg", Position: 0},
		{URL: "/uploads/cakes/second.jpg", Position: 1},
	}

	paths := droppedLocalImageFiles(previous, nil)
	assert.Equal(t, []string{
		filepath.Join(cakeUploadDir, "first.jpg"),
		filepath.Join(cakeUploadDir, "second.jpg"),
	}, paths)
}
