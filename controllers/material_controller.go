package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mes-app/controllers/helpers"
	"mes-app/models"
	"mes-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type MaterialController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

func NewMaterialController(db *gorm.DB, stock *services.StockService) *MaterialController {
	return &MaterialController{DB: db, Stock: stock}
}

type materialInput struct {
	Code         string          `json:"code" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	CurrentStock int             `json:"current_stock" validate:"gte=0"`
	SafetyStock  int             `json:"safety_stock" validate:"gte=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Category     string          `json:"category" validate:"required,oneof=RAW FINISHING HARDWARE"`
}

type stockInput struct {
	StockChange int    `json:"stock_change" validate:"required"`
	Operation   string `json:"operation" validate:"required,oneof=add reduce"`
}

func (c *MaterialController) GetAllMaterials(ctx *fiber.Ctx) error {
	query := c.DB.Model(&models.Material{})
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR code LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var materials []models.Material
	if err := query.Order("code asc").Find(&materials).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Materials found", "data": materials})
}

func (c *MaterialController) GetMaterialByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var material models.Material
	if err := c.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material found", "data": material})
}

func (c *MaterialController) CreateMaterial(ctx *fiber.Ctx) error {
	var input materialInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	material := models.Material{
		Code:         input.Code,
		Name:         input.Name,
		Unit:         input.Unit,
		CurrentStock: input.CurrentStock,
		SafetyStock:  input.SafetyStock,
		PricePerUnit: input.PricePerUnit,
		Category:     input.Category,
	}

	if err := c.DB.Create(&material).Error; err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Material code already exists"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Material created successfully", "data": material})
}

func (c *MaterialController) UpdateMaterial(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var material models.Material
	if err := c.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input materialInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	material.Code = input.Code
	material.Name = input.Name
	material.Unit = input.Unit
	material.SafetyStock = input.SafetyStock
	material.PricePerUnit = input.PricePerUnit
	material.Category = input.Category

	if err := c.DB.Save(&material).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material updated successfully", "data": material})
}

func (c *MaterialController) DeleteMaterial(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var material models.Material
	if err := c.DB.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Material not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var bomCount int64
	c.DB.Model(&models.BomItem{}).Where("material_id = ?", id).Count(&bomCount)
	if bomCount > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Material is referenced by BOM items"})
	}

	if err := c.DB.Delete(&material).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material deleted successfully", "data": material})
}

// UpdateStock applies an add/reduce mutation through the stock service.
func (c *MaterialController) UpdateStock(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input stockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.ValidationError(ctx, err)
	}

	actor := ""
	if userID, ok := ctx.Locals("userID").(float64); ok {
		actor = strconv.Itoa(int(userID))
	}

	material, err := c.Stock.AdjustStock(uint(id), input.StockChange, input.Operation, actor)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientStock) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Not enough stock to reduce"})
		}
		return helpers.ServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock updated successfully", "data": material})
}

// GetLowStock lists materials below their safety stock.
func (c *MaterialController) GetLowStock(ctx *fiber.Ctx) error {
	materials, err := c.Stock.LowStock()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Low stock materials found", "data": materials})
}

// GetStockHistory returns the mutation trail for one material.
func (c *MaterialController) GetStockHistory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var history []models.StockHistory
	if err := c.DB.Where("material_id = ?", id).Order("created_at desc").Find(&history).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock history found", "data": history})
}

// ExportMaterials writes the material master as an Excel download.
func (c *MaterialController) ExportMaterials(ctx *fiber.Ctx) error {
	var materials []models.Material
	if err := c.DB.Order("code asc").Find(&materials).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"CODE", "NAME", "UNIT", "CURRENT_STOCK", "SAFETY_STOCK", "PRICE_PER_UNIT", "CATEGORY"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, m := range materials {
		row := i + 2
		values := []interface{}{m.Code, m.Name, m.Unit, m.CurrentStock, m.SafetyStock, m.PricePerUnit.String(), m.Category}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate file"})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="materials.xlsx"`)
	return ctx.Send(buf.Bytes())
}

type MaterialUploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

// CreateMaterialFromExcel bulk-imports the material master from an uploaded
// Excel file. Rows with an existing code are skipped, bad rows are reported
// and the rest still import.
func (c *MaterialController) CreateMaterialFromExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "File is required"})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Only Excel files (.xlsx, .xls) are allowed"})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to open file"})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Failed to read Excel file"})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No sheets found in Excel file"})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to read rows"})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Excel file must contain header and at least one data row"})
	}

	result := MaterialUploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < 7 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Insufficient columns (expected 7)", rowNum))
			continue
		}

		code := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		unit := strings.TrimSpace(row[2])
		category := strings.ToUpper(strings.TrimSpace(row[6]))

		if code == "" || name == "" || category == "" {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: CODE, NAME and CATEGORY are required", rowNum))
			continue
		}

		currentStock, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || currentStock < 0 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid current stock '%s'", rowNum, row[3]))
			continue
		}

		safetyStock, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil || safetyStock < 0 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid safety stock '%s'", rowNum, row[4]))
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row[5]))
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid price '%s'", rowNum, row[5]))
			continue
		}

		var existing models.Material
		if err := tx.Where("code = ?", code).First(&existing).Error; err == nil {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, code)
			continue
		}

		material := models.Material{
			Code:         code,
			Name:         name,
			Unit:         unit,
			CurrentStock: currentStock,
			SafetyStock:  safetyStock,
			PricePerUnit: price,
			Category:     category,
		}

		if err := tx.Create(&material).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create material - %s", rowNum, err.Error()))
			continue
		}

		result.SuccessCount++
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to commit transaction"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d success, %d skipped, %d errors",
			result.SuccessCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}
