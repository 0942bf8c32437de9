package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"restoapi/internal/service"
	serviceMocks "restoapi/internal/service/mocks"
)

func imageForm(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(h)
	part.Write(data)
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockImageService)
	app := fiber.New()
	app.Post("/upload-image", UploadImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := imageForm(t, "image", "pho.JPG", "image/jpeg", []byte("jpeg bytes"))
		expected := &service.UploadedImage{URL: "http://cdn.local/menu/abc.jpg", PublicID: "abc.jpg"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "pho.JPG", "image/jpeg", int64(10)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result service.UploadedImage
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "abc.jpg", result.PublicID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload-image", nil)
		// Missing content-type and body
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("wrong field name", func(t *testing.T) {
		body, ct := imageForm(t, "file", "pho.jpg", "image/jpeg", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload-image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not an image", func(t *testing.T) {
		body, ct := imageForm(t, "image", "notes.txt", "text/plain", []byte("hello"))
		mockSvc.On("Upload", mock.Anything, mock.Anything, "notes.txt", "text/plain", mock.Anything).Return(nil, service.ErrNotAnImage).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "NOT_AN_IMAGE", decodeError(t, resp).Error.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		body, ct := imageForm(t, "image", "big.png", "image/png", []byte("png"))
		mockSvc.On("Upload", mock.Anything, mock.Anything, "big.png", "image/png", mock.Anything).Return(nil, errors.New("upload to storage: timeout")).Once()

		req := httptest.NewRequest(http.MethodPost, "/upload-image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockImageService)
	app := fiber.New()
	app.Delete("/upload-image/:public_id", DeleteImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "abc.jpg").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/upload-image/abc.jpg", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "bad-id").Return(service.ErrInvalidPublicID).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/upload-image/bad-id", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PUBLIC_ID", decodeError(t, resp).Error.Code)
	})
}
