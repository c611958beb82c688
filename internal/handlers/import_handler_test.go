package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront-service/internal/models"
)

func setupImportRouter(repo *MockCatalogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewImportHandler(repo)
	router := gin.New()
	router.POST("/api/products/import", handler.ImportProducts)
	return router
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportProductsCSV(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("BulkCreateProducts", mock.Anything, mock.MatchedBy(func(products []*models.Product) bool {
		return len(products) == 2 &&
			products[0].Name == "Silk Scarf" &&
			products[0].Price == 120 &&
			products[0].Featured &&
			products[1].Gender == models.GenderMen
	})).Return(nil)

	csv := "name,description,price,category,featured,gender\n" +
		"Silk Scarf,Hand-rolled silk,120,Accessories,true,\n" +
		"Leather Belt,Full grain leather,85,Accessories,false,Men\n"

	body, contentType := multipartCSV(t, "catalog.csv", csv)
	router := setupImportRouter(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ImportResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Empty(t, result.Errors)
	repo.AssertExpectations(t)
}

func TestImportProductsReportsRowErrors(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("BulkCreateProducts", mock.Anything, mock.MatchedBy(func(products []*models.Product) bool {
		return len(products) == 1 && products[0].Name == "Silk Scarf"
	})).Return(nil)

	csv := "name,description,price,category\n" +
		"Silk Scarf,Fine,120,Accessories\n" +
		",Missing name,80,Accessories\n" +
		"Bad Price,Oops,expensive,Accessories\n"

	body, contentType := multipartCSV(t, "catalog.csv", csv)
	router := setupImportRouter(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ImportResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success, "valid rows still commit")
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "REQUIRED", result.Errors[0].Code)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "INVALID", result.Errors[1].Code)
}

func TestImportProductsRejectsUnknownExtension(t *testing.T) {
	repo := new(MockCatalogRepository)

	body, contentType := multipartCSV(t, "catalog.pdf", "whatever")
	router := setupImportRouter(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_FORMAT", resp.Error.Code)
	repo.AssertNotCalled(t, "BulkCreateProducts")
}

func TestImportProductsRequiresFile(t *testing.T) {
	repo := new(MockCatalogRepository)
	router := setupImportRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/products/import", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestImportProductsEmptyFile(t *testing.T) {
	repo := new(MockCatalogRepository)

	body, contentType := multipartCSV(t, "catalog.csv", "name,price,category\n")
	router := setupImportRouter(repo)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/products/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_FILE", resp.Error.Code)
}
