package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type ImportHandler struct {
	repo repository.CatalogRepositoryInterface
}

func NewImportHandler(repo repository.CatalogRepositoryInterface) *ImportHandler {
	return &ImportHandler{repo: repo}
}

// ImportProducts loads catalog entries from an uploaded CSV or Excel file.
// Rows that fail validation are reported individually; the remaining rows are
// still committed.
// POST /api/products/import
// @Summary Import products
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Router /products/import [post]
func (h *ImportHandler) ImportProducts(c *gin.Context) {
	startTime := time.Now()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload a CSV or Excel file",
			},
		})
		return
	}
	defer file.Close()

	filename := strings.ToLower(header.Filename)
	var format models.ImportFormat
	switch {
	case strings.HasSuffix(filename, ".csv"):
		format = models.ImportFormatCSV
	case strings.HasSuffix(filename, ".xlsx"):
		format = models.ImportFormatXLSX
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_FORMAT",
				Message: "Only CSV and XLSX files are supported",
			},
		})
		return
	}

	var rows []map[string]string
	var parseErr error
	if format == models.ImportFormatCSV {
		rows, parseErr = h.parseCSV(file)
	} else {
		rows, parseErr = h.parseXLSX(file)
	}
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARSE_ERROR",
				Message: parseErr.Error(),
			},
		})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EMPTY_FILE",
				Message: "The file contains no data rows",
			},
		})
		return
	}

	result := h.processImport(c, rows)
	result.ProcessingMs = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) processImport(c *gin.Context, rows []map[string]string) *models.ImportResult {
	result := &models.ImportResult{
		TotalRows:  len(rows),
		Errors:     make([]models.ImportRowError, 0),
		CreatedIDs: make([]string, 0),
	}

	products := make([]*models.Product, 0, len(rows))
	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])

		h.validateRequiredFields(row, rowNum, result)
		if h.hasRowErrors(result, rowNum) {
			continue
		}

		price, _ := strconv.ParseFloat(row["price"], 64)
		product := &models.Product{
			Name:          row["name"],
			Description:   row["description"],
			Price:         price,
			OriginalPrice: parseFloatField(row["original_price"]),
			Category:      row["category"],
			Brand:         row["brand"],
			Images:        parseImages(row["images"]),
			Stock:         parseIntField(row["stock"]),
			Rating:        parseFloatField(row["rating"]),
			NumReviews:    parseIntField(row["numreviews"]),
			NewArrival:    parseBoolField(row["new_arrival"]),
			Featured:      parseBoolField(row["featured"]),
			Gender:        models.Gender(row["gender"]),
			Colour:        row["colour"],
			ProductType:   row["producttype"],
			SubCategory:   row["subcategory"],
			Usage:         row["usage"],
			SourceID:      row["productid"],
		}
		products = append(products, product)
	}

	result.FailedCount = result.TotalRows - len(products)
	if len(products) == 0 {
		result.Success = false
		return result
	}

	if err := h.repo.BulkCreateProducts(c.Request.Context(), products); err != nil {
		result.Success = false
		result.FailedCount = result.TotalRows
		result.Errors = append(result.Errors, models.ImportRowError{
			Row:     0,
			Code:    "BULK_CREATE_FAILED",
			Message: err.Error(),
		})
		return result
	}

	for _, product := range products {
		result.CreatedIDs = append(result.CreatedIDs, product.ID.String())
	}
	result.CreatedCount = len(products)
	result.Success = true
	return result
}

// parseCSV parses a CSV file into rows keyed by normalized header name
func (h *ImportHandler) parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	normalizeHeaders(headers)

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}

	return rows, nil
}

// parseXLSX parses the first sheet of an Excel file into rows
func (h *ImportHandler) parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	normalizeHeaders(headers)

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}

	return rows, nil
}

func normalizeHeaders(headers []string) {
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.ToLower(headers[i]))
		headers[i] = strings.TrimSuffix(headers[i], " *")
	}
}

func (h *ImportHandler) validateRequiredFields(row map[string]string, rowNum int, result *models.ImportResult) {
	if row["name"] == "" {
		h.addError(result, rowNum, "name", "REQUIRED", "Product name is required")
	}
	if row["category"] == "" {
		h.addError(result, rowNum, "category", "REQUIRED", "Category is required")
	}
	if row["price"] == "" {
		h.addError(result, rowNum, "price", "REQUIRED", "Price is required")
	} else if _, err := strconv.ParseFloat(row["price"], 64); err != nil {
		h.addError(result, rowNum, "price", "INVALID", "Price must be a valid number")
	}
	if gender := row["gender"]; gender != "" {
		switch models.Gender(gender) {
		case models.GenderBoys, models.GenderGirls, models.GenderMen, models.GenderWomen:
		default:
			h.addError(result, rowNum, "gender", "INVALID", "Gender must be one of Boys, Girls, Men, Women")
		}
	}
}

func (h *ImportHandler) addError(result *models.ImportResult, rowNum int, column, code, message string) {
	result.Errors = append(result.Errors, models.ImportRowError{
		Row:     rowNum,
		Column:  column,
		Code:    code,
		Message: message,
	})
}

func (h *ImportHandler) hasRowErrors(result *models.ImportResult, rowNum int) bool {
	for _, e := range result.Errors {
		if e.Row == rowNum {
			return true
		}
	}
	return false
}

func parseFloatField(value string) float64 {
	f, _ := strconv.ParseFloat(value, 64)
	return f
}

func parseIntField(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}

func parseBoolField(value string) bool {
	return strings.EqualFold(value, "true")
}

// parseImages splits a pipe-separated image URL list
func parseImages(value string) models.StringArray {
	if value == "" {
		return models.StringArray{}
	}
	parts := strings.Split(value, "|")
	images := make(models.StringArray, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	return images
}
