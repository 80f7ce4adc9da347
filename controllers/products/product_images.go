package productController

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const uploadDir = "./uploads"

// saveUploadedImages stores the "image" files of a multipart form under
// uploads/ with random names and returns their public paths.
func saveUploadedImages(c *fiber.Ctx, max int) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return []string{}, nil
	}

	files := form.File["image"]
	if len(files) > max {
		files = files[:max]
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := saveImage(c, file)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// replaceImage swaps the image at index for the uploaded file, removing
// the old file from disk; an out-of-range index appends instead.
func replaceImage(c *fiber.Ctx, images []string, file *multipart.FileHeader, index int) ([]string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}

	path, err := saveImage(c, file)
	if err != nil {
		return nil, err
	}

	if index >= 0 && index < len(images) {
		// Best effort: a missing old file is not an error
		old := strings.TrimPrefix(images[index], "/")
		_ = os.Remove(old)
		images[index] = path
		return images, nil
	}

	return append(images, path), nil
}

func saveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(uploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
